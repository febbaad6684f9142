package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oddsdesk/prop_fetcher/cmd/config"
	"oddsdesk/prop_fetcher/internal/api"
	"oddsdesk/prop_fetcher/internal/entity"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fanduelOdds = `{
	"id":"%s",
	"bookmakers":[
		{"key":"fanduel","title":"FanDuel","markets":[
			{"key":"player_rush_yds","outcomes":[
				{"name":"Over","description":"%s","price":%s,"point":87.5},
				{"name":"Under","description":"%s","price":1.91,"point":87.5}
			]}
		]},
		{"key":"draftkings","title":"DraftKings","markets":[
			{"key":"player_rush_yds","outcomes":[
				{"name":"Over","description":"%s","price":1.87,"point":88.5}
			]}
		]}
	]
}`

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.APIConfig{
		Url:        srv.URL,
		Sport:      "americanfootball_nfl",
		Region:     "us",
		HoursAhead: 48,
		Markets:    []string{"player_rush_yds"},
		Bookmaker:  "fanduel",
		Timeout:    5,
	}

	logger := zerolog.Nop()
	return New(api.New(cfg, &logger), cfg, &logger)
}

func testEvents(ids ...string) []entity.Event {
	events := make([]entity.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, entity.Event{
			ID:       id,
			Home:     "Bills",
			Away:     "Jets",
			DateTime: "01-05-2025 13:00",
		})
	}
	return events
}

func TestFetchOddsKeepsOverRowsOfTargetBookmaker(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, fanduelOdds, "ev1", "J. Taylor", "2.5", "J. Taylor", "J. Taylor")
	})

	var last [2]int
	records := service.FetchOdds("secret", testEvents("ev1"), func(done, total int) {
		last = [2]int{done, total}
	})

	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "Bills vs Jets", record.Game)
	assert.Equal(t, "01-05-2025 13:00", record.DateTime)
	assert.Equal(t, "FanDuel", record.Bookmaker)
	assert.Equal(t, "player_rush_yds", record.Market)
	assert.Equal(t, "J. Taylor", record.Player)
	assert.Equal(t, "Over", record.Side)
	require.NotNil(t, record.Point)
	assert.Equal(t, 87.5, *record.Point)
	require.NotNil(t, record.Odds)
	assert.Equal(t, 150, *record.Odds)
	assert.Equal(t, [2]int{1, 1}, last)
}

func TestFetchOddsSkips422Silently(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v4/sports/americanfootball_nfl/events/ev2/odds":
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			id := "ev1"
			if r.URL.Path == "/v4/sports/americanfootball_nfl/events/ev3/odds" {
				id = "ev3"
			}
			fmt.Fprintf(w, fanduelOdds, id, "J. Taylor", "1.5", "J. Taylor", "J. Taylor")
		}
	})

	var ticks int
	records := service.FetchOdds("secret", testEvents("ev1", "ev2", "ev3"), func(done, total int) {
		ticks++
	})

	// one Over row each from ev1 and ev3, nothing from the 422 event
	require.Len(t, records, 2)
	for _, record := range records {
		require.NotNil(t, record.Odds)
		assert.Equal(t, -200, *record.Odds)
	}
	assert.Equal(t, 3, ticks)
}

func TestFetchOddsContinuesAfterUpstreamError(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v4/sports/americanfootball_nfl/events/ev1/odds" {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"message":"Requests exceeded"}`)
			return
		}
		fmt.Fprintf(w, fanduelOdds, "ev2", "T. Hill", "2.1", "T. Hill", "T. Hill")
	})

	records := service.FetchOdds("secret", testEvents("ev1", "ev2"), func(done, total int) {})

	require.Len(t, records, 1)
	assert.Equal(t, "T. Hill", records[0].Player)
}

func TestFetchOddsEmptyEvents(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an empty subset")
	})

	records := service.FetchOdds("secret", nil, func(done, total int) {
		t.Error("no progress expected for an empty subset")
	})

	assert.Empty(t, records)
}

func TestStartFetchJobLifecycle(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, fanduelOdds, "ev1", "J. Taylor", "2.5", "J. Taylor", "J. Taylor")
	})

	terminal := make(chan entity.Progress, 1)
	jobID := service.StartFetch("secret", testEvents("ev1"), func(p entity.Progress) {
		if p.Status != entity.JobRunning {
			terminal <- p
		}
	})

	select {
	case p := <-terminal:
		assert.Equal(t, jobID, p.JobID)
		assert.Equal(t, entity.JobDone, p.Status)
		assert.Equal(t, 1, p.Done)
		assert.Equal(t, 1, p.Total)
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}

	job, ok := service.Job(jobID)
	require.True(t, ok)
	assert.Equal(t, entity.JobDone, job.Status)
	assert.Equal(t, job.Total, job.Done)
	require.Len(t, job.Records, 1)
}

func TestStartFetchNoGames(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected")
	})

	terminal := make(chan entity.Progress, 1)
	jobID := service.StartFetch("secret", nil, func(p entity.Progress) {
		if p.Status != entity.JobRunning {
			terminal <- p
		}
	})

	select {
	case p := <-terminal:
		assert.Equal(t, entity.JobNoData, p.Status)
		assert.Contains(t, p.Message, "no upcoming games")
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}

	job, ok := service.Job(jobID)
	require.True(t, ok)
	assert.Equal(t, entity.JobNoData, job.Status)
	assert.Empty(t, job.Records)
}
