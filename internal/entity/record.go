package entity

// OddsRecord is one output row: an Over prop with a normalized price.
// Odds is nil when the raw price could not be converted.
type OddsRecord struct {
	Game      string   `json:"game"`
	DateTime  string   `json:"date_time_est"`
	Date      string   `json:"date_est"`
	Time      string   `json:"time_est"`
	Bookmaker string   `json:"bookmaker"`
	Market    string   `json:"market"`
	Player    string   `json:"player"`
	Point     *float64 `json:"over_under"`
	Side      string   `json:"side"`
	Odds      *int     `json:"odds_american"`
}
