// Package oddsapi implements the odds provider against The Odds API v4,
// fetching totals markets with decimal prices for the EU region.
package oddsapi

import (
	"context"
	"fmt"

	"goalline/pkg/prediction"
	"goalline/pkg/transport"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *transport.Client
}

var _ prediction.OddsProvider = (*Client)(nil)

func New(baseURL, apiKey string, httpClient *transport.Client) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

type event struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// Events lists the market snapshot for a sport key
func (c *Client) Events(ctx context.Context, sportKey string) ([]prediction.EventOdds, error) {
	url, err := transport.BuildURL(
		fmt.Sprintf("%s/sports/%s/odds", c.baseURL, sportKey),
		map[string]string{
			"apiKey":     c.apiKey,
			"regions":    "eu",
			"markets":    "totals",
			"oddsFormat": "decimal",
		},
	)
	if err != nil {
		return nil, err
	}

	var events []event
	if err := c.http.GetJSON(ctx, url, nil, &events); err != nil {
		return nil, fmt.Errorf("odds request failed: %w", err)
	}

	result := make([]prediction.EventOdds, 0, len(events))
	for _, ev := range events {
		eo := prediction.EventOdds{
			HomeTeam: ev.HomeTeam,
			AwayTeam: ev.AwayTeam,
		}
		for _, bm := range ev.Bookmakers {
			bo := prediction.BookmakerOdds{Key: bm.Key}
			for _, mk := range bm.Markets {
				if mk.Key != "totals" {
					continue
				}
				for _, o := range mk.Outcomes {
					bo.Totals = append(bo.Totals, prediction.TotalsOutcome{
						Line:  o.Point,
						Side:  o.Name,
						Price: o.Price,
					})
				}
			}
			if len(bo.Totals) > 0 {
				eo.Bookmakers = append(eo.Bookmakers, bo)
			}
		}
		result = append(result, eo)
	}
	return result, nil
}
