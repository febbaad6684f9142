package entity

import "encoding/json"

// ResponseEventOdds is the upstream odds payload for a single event
// (GET /v4/sports/{sport}/events/{id}/odds).
type ResponseEventOdds struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome keeps Price as json.Number: the converter distinguishes
// integer tokens (already American) from fractional ones (decimal odds).
type Outcome struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Point       *float64    `json:"point"`
}

// PropOutcome is one flattened outcome of the matched bookmaker.
type PropOutcome struct {
	Bookmaker string
	Market    string
	Player    string
	Point     *float64
	Side      string
	Price     json.Number
}
