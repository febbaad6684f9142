package entity

import "time"

// ResponseEvent is one item of the upstream events list
// (GET /v4/sports/{sport}/events).
type ResponseEvent struct {
	ID           string `json:"id"`
	SportKey     string `json:"sport_key"`
	SportTitle   string `json:"sport_title"`
	CommenceTime string `json:"commence_time"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
}

type Event struct {
	ID       string    `json:"id"`
	Home     string    `json:"home"`
	Away     string    `json:"away"`
	Kickoff  time.Time `json:"kickoff"`  // UTC
	DateTime string    `json:"dateTime"` // kickoff in US Eastern, "01-02-2006 15:04"
	Date     string    `json:"date"`
	Time     string    `json:"time"`
}

func (e Event) Name() string {
	return e.Home + " vs " + e.Away
}
