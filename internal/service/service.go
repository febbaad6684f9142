package service

import (
	"fmt"

	"oddsdesk/prop_fetcher/cmd/config"
	"oddsdesk/prop_fetcher/internal/api"
	"oddsdesk/prop_fetcher/internal/entity"
	"oddsdesk/prop_fetcher/internal/parse"

	"github.com/rs/zerolog"
)

const keptSide = "Over"

type Service struct {
	api    *api.API
	cfg    config.APIConfig
	jobs   *Jobs
	logger *zerolog.Logger
}

func New(api *api.API, cfg config.APIConfig, logger *zerolog.Logger) *Service {
	return &Service{
		api:    api,
		cfg:    cfg,
		jobs:   NewJobs(),
		logger: logger,
	}
}

// Events runs discovery for the configured sport and horizon.
func (s *Service) Events(apiKey string) ([]entity.Event, error) {
	return s.api.GetEvents(apiKey)
}

// Job returns a snapshot of a fetch job.
func (s *Service) Job(id string) (Job, bool) {
	return s.jobs.Get(id)
}

// StartFetch launches one fetch job over the given event subset and returns
// its id. notify receives a progress message per processed event plus one
// terminal message.
func (s *Service) StartFetch(apiKey string, events []entity.Event, notify func(entity.Progress)) string {
	job := s.jobs.Create(len(events))

	go func() {
		records := s.FetchOdds(apiKey, events, func(done, total int) {
			s.jobs.Progress(job.ID, done)
			notify(entity.Progress{JobID: job.ID, Status: entity.JobRunning, Done: done, Total: total})
		})

		status := entity.JobDone
		message := fmt.Sprintf("retrieved %d odds entries", len(records))
		if len(records) == 0 {
			status = entity.JobNoData
			message = "no player prop odds available"
			if len(events) == 0 {
				message = "no upcoming games in the selected window"
			}
		}

		s.jobs.Finish(job.ID, status, message, records)
		notify(entity.Progress{JobID: job.ID, Status: status, Done: len(events), Total: len(events), Message: message})
	}()

	return job.ID
}

// FetchOdds is the odds pipeline: one sequential pass over the events,
// one upstream call each. A failing event is logged and skipped, it never
// aborts the batch. Only Over outcomes of the configured bookmaker are kept.
func (s *Service) FetchOdds(apiKey string, events []entity.Event, progress func(done, total int)) []entity.OddsRecord {
	total := len(events)
	records := make([]entity.OddsRecord, 0, 256)

	for i, event := range events {
		odds, err := s.api.GetEventOdds(apiKey, event.ID)
		if err != nil {
			s.logger.Error().Err(err).Msgf("[Service.FetchOdds] error get odds. event - %s", event.ID)
			progress(i+1, total)
			continue
		}

		// nil odds: upstream had nothing eligible for this event (422)
		if odds == nil {
			progress(i+1, total)
			continue
		}

		for _, outcome := range parse.BookmakerOutcomes(odds, s.cfg.Bookmaker) {
			if outcome.Side != keptSide {
				continue
			}

			record := entity.OddsRecord{
				Game:      event.Name(),
				DateTime:  event.DateTime,
				Date:      event.Date,
				Time:      event.Time,
				Bookmaker: outcome.Bookmaker,
				Market:    outcome.Market,
				Player:    outcome.Player,
				Point:     outcome.Point,
				Side:      outcome.Side,
			}
			if american, ok := parse.AmericanOdds(outcome.Price); ok {
				record.Odds = &american
			}

			records = append(records, record)
		}

		progress(i+1, total)
	}

	return records
}
