package parse

import (
	"strings"

	"oddsdesk/prop_fetcher/internal/entity"
)

// BookmakerOutcomes flattens the odds payload to the outcomes of the one
// bookmaker whose title contains name (case-insensitive). Empty result means
// the bookmaker did not price this event.
func BookmakerOutcomes(odds *entity.ResponseEventOdds, name string) []entity.PropOutcome {
	if odds == nil {
		return nil
	}

	name = strings.ToLower(name)

	var outcomes []entity.PropOutcome
	for _, bookmaker := range odds.Bookmakers {
		if !strings.Contains(strings.ToLower(bookmaker.Title), name) {
			continue
		}

		for _, market := range bookmaker.Markets {
			for _, outcome := range market.Outcomes {
				outcomes = append(outcomes, entity.PropOutcome{
					Bookmaker: bookmaker.Title,
					Market:    market.Key,
					Player:    outcome.Description,
					Point:     outcome.Point,
					Side:      outcome.Name,
					Price:     outcome.Price,
				})
			}
		}
	}

	return outcomes
}
