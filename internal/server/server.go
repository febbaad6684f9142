package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"oddsdesk/prop_fetcher/cmd/config"
	"oddsdesk/prop_fetcher/internal/entity"
	"oddsdesk/prop_fetcher/internal/sender"
	"oddsdesk/prop_fetcher/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

var csvHeader = []string{
	"game", "date_time_est", "date_est", "time_est",
	"bookmaker", "market", "player", "over_under", "side", "odds_american",
}

// Server is the HTTP shell around the odds pipeline: list events, trigger a
// fetch for a chosen subset, poll job progress, download the CSV.
type Server struct {
	cfg     config.AppConfig
	service *service.Service
	sender  *sender.Sender
	logger  *zerolog.Logger
}

func New(cfg config.AppConfig, service *service.Service, sender *sender.Sender, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
		sender:  sender,
		logger:  logger,
	}
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	router.Get("/health", s.handleHealth)
	router.Get("/api/events", s.handleEvents)
	router.Post("/api/fetch", s.handleFetch)
	router.Get("/api/jobs/{id}", s.handleJob)
	router.Get("/api/jobs/{id}/csv", s.handleJobCSV)
	router.Get("/output", s.sender.HandleClientConn)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	apiKey, err := config.LoadAPIKey(s.cfg.KeyFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	events, err := s.service.Events(apiKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("[Server.handleEvents] error get events")
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

type fetchRequest struct {
	EventIDs []string `json:"event_ids"`
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	apiKey, err := config.LoadAPIKey(s.cfg.KeyFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// absent or malformed body means "fetch everything"
	var req fetchRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	events, err := s.service.Events(apiKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("[Server.handleFetch] error get events")
		writeError(w, http.StatusBadGateway, err)
		return
	}

	subset := selectEvents(events, req.EventIDs)

	jobID := s.service.StartFetch(apiKey, subset, func(p entity.Progress) {
		s.sender.Broadcast(p)
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.service.Job(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown job"))
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobCSV(w http.ResponseWriter, r *http.Request) {
	job, ok := s.service.Job(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown job"))
		return
	}

	if job.Status == entity.JobRunning {
		writeError(w, http.StatusConflict, errors.New("job still running"))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="odds.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := WriteCSV(w, job.Records); err != nil {
		s.logger.Error().Err(err).Msg("[Server.handleJobCSV] error write csv")
	}
}

// WriteCSV serializes records with the stable export column order.
func WriteCSV(w io.Writer, records []entity.OddsRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, record := range records {
		point := ""
		if record.Point != nil {
			point = strconv.FormatFloat(*record.Point, 'f', -1, 64)
		}
		odds := ""
		if record.Odds != nil {
			odds = strconv.Itoa(*record.Odds)
		}

		row := []string{
			record.Game, record.DateTime, record.Date, record.Time,
			record.Bookmaker, record.Market, record.Player, point, record.Side, odds,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// selectEvents keeps the events named by ids, in discovery order. An empty
// ids list selects everything.
func selectEvents(events []entity.Event, ids []string) []entity.Event {
	if len(ids) == 0 {
		return events
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	subset := make([]entity.Event, 0, len(ids))
	for _, event := range events {
		if wanted[event.ID] {
			subset = append(subset, event)
		}
	}
	return subset
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
