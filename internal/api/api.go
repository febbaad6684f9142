package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"oddsdesk/prop_fetcher/cmd/config"
	"oddsdesk/prop_fetcher/internal/entity"

	"github.com/rs/zerolog"
)

const (
	apiVersion  = "v4"
	dateFormat  = "iso"
	localFormat = "01-02-2006 15:04"
	localDate   = "01-02-2006"
	localTime   = "15:04"
)

type API struct {
	cfg     config.APIConfig
	client  *http.Client
	eastern *time.Location
	logger  *zerolog.Logger
}

func New(cfg config.APIConfig, logger *zerolog.Logger) *API {
	client := &http.Client{
		Timeout: time.Second * time.Duration(cfg.Timeout),
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		logger.Error().Err(err).Msg("[api.New] US Eastern tzdata unavailable, kickoff times stay UTC")
		eastern = time.UTC
	}

	return &API{
		cfg:     cfg,
		client:  client,
		eastern: eastern,
		logger:  logger,
	}
}

// GetEvents lists upcoming events for the configured sport and keeps those
// starting within the configured horizon (boundary inclusive). Events with a
// malformed kickoff are skipped individually. Response order is preserved.
func (api *API) GetEvents(apiKey string) ([]entity.Event, error) {
	url := fmt.Sprintf("%s/%s/sports/%s/events", api.cfg.Url, apiVersion, api.cfg.Sport)

	body, err := api.get(url, apiKey, nil)
	if err != nil {
		return nil, err
	}

	var result []entity.ResponseEvent
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(time.Duration(api.cfg.HoursAhead) * time.Hour)

	events := make([]entity.Event, 0, len(result))
	for _, event := range result {
		kickoff, err := time.Parse(time.RFC3339, event.CommenceTime)
		if err != nil {
			api.logger.Error().Err(err).Msgf("[API.GetEvents] bad commence_time for event %s", event.ID)
			continue
		}

		if kickoff.After(cutoff) {
			continue
		}

		local := kickoff.In(api.eastern)
		events = append(events, entity.Event{
			ID:       event.ID,
			Home:     event.HomeTeam,
			Away:     event.AwayTeam,
			Kickoff:  kickoff,
			DateTime: local.Format(localFormat),
			Date:     local.Format(localDate),
			Time:     local.Format(localTime),
		})
	}

	return events, nil
}

// GetEventOdds fetches player-prop odds for one event. HTTP 422 means the
// upstream has no eligible odds for this event and yields (nil, nil).
func (api *API) GetEventOdds(apiKey, eventID string) (*entity.ResponseEventOdds, error) {
	url := fmt.Sprintf("%s/%s/sports/%s/events/%s/odds", api.cfg.Url, apiVersion, api.cfg.Sport, eventID)

	body, err := api.get(url, apiKey, api.cfg.Markets)
	if err != nil {
		if err == errNoEligibleOdds {
			return nil, nil
		}
		return nil, err
	}

	var result entity.ResponseEventOdds
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

var errNoEligibleOdds = errors.New("no eligible odds")

func (api *API) get(url, apiKey string, markets []string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	query.Add("apiKey", apiKey)
	query.Add("regions", api.cfg.Region)
	query.Add("dateFormat", dateFormat)
	if len(markets) != 0 {
		query.Add("markets", strings.Join(markets, ","))
	}
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Accept", "*/*")

	resp, err := api.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, errNoEligibleOdds
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, upstreamMessage(body))
	}

	return body, nil
}

// upstreamMessage pulls the message field out of an error body when it
// parses, otherwise returns the raw body.
func upstreamMessage(body []byte) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
		return errBody.Message
	}
	return strings.TrimSpace(string(body))
}
