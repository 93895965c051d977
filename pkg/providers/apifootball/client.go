// Package apifootball implements the match/team/league provider against
// the api-sports v3 football API.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"goalline/internal/logger"
	"goalline/pkg/cache"
	"goalline/pkg/prediction"
	"goalline/pkg/transport"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *transport.Client

	store *cache.Store
	ttl   time.Duration
}

// compile-time check that the client satisfies the provider contract
var _ prediction.MatchProvider = (*Client)(nil)

func New(baseURL, apiKey string, httpClient *transport.Client) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// WithCache attaches a response cache; lookups younger than ttl are served
// locally
func (c *Client) WithCache(store *cache.Store, ttl time.Duration) *Client {
	c.store = store
	c.ttl = ttl
	return c
}

// envelope is the common api-sports response wrapper
type envelope struct {
	Errors   any             `json:"errors"`
	Response json.RawMessage `json:"response"`
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	url, err := transport.BuildURL(c.baseURL+path, params)
	if err != nil {
		return err
	}

	var body []byte
	if c.store != nil {
		if cached, ok := c.store.Get(url, c.ttl); ok {
			body = cached
		}
	}
	if body == nil {
		body, err = c.http.Get(ctx, url, map[string]string{"x-apisports-key": c.apiKey})
		if err != nil {
			return fmt.Errorf("api-football request failed: %w", err)
		}
		if c.store != nil {
			if err := c.store.Put(url, body); err != nil {
				logger.Warn("Failed to cache api-football response:", err)
			}
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode api-football envelope: %w", err)
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("failed to decode api-football response: %w", err)
	}
	return nil
}

type teamEntry struct {
	Team struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"team"`
	Venue struct {
		City string `json:"city"`
	} `json:"venue"`
}

// SearchTeam queries /teams by free-text name
func (c *Client) SearchTeam(ctx context.Context, name string) ([]prediction.TeamRecord, error) {
	var entries []teamEntry
	if err := c.get(ctx, "/teams", map[string]string{"search": name}, &entries); err != nil {
		return nil, err
	}
	records := make([]prediction.TeamRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, prediction.TeamRecord{
			ID:      e.Team.ID,
			Name:    e.Team.Name,
			City:    e.Venue.City,
			Country: e.Team.Country,
		})
	}
	return records, nil
}

type leagueEntry struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// SearchLeague queries /leagues; empty country or zero season omit those
// filters, which makes it the free-text variant
func (c *Client) SearchLeague(ctx context.Context, country, name string, season int) ([]prediction.LeagueRecord, error) {
	params := map[string]string{"name": name}
	if country != "" {
		params["country"] = country
	}
	if season != 0 {
		params["season"] = strconv.Itoa(season)
	}
	var entries []leagueEntry
	if err := c.get(ctx, "/leagues", params, &entries); err != nil {
		return nil, err
	}
	records := make([]prediction.LeagueRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, prediction.LeagueRecord{
			ID:      e.League.ID,
			Name:    e.League.Name,
			Country: e.Country.Name,
		})
	}
	return records, nil
}

type fixtureEntry struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

// Fixtures queries /fixtures with whichever filters the query carries
func (c *Client) Fixtures(ctx context.Context, q prediction.FixtureQuery) ([]prediction.FixtureRecord, error) {
	params := map[string]string{"timezone": "UTC"}
	if q.TeamID != 0 {
		params["team"] = strconv.Itoa(q.TeamID)
	}
	if q.LeagueID != 0 {
		params["league"] = strconv.Itoa(q.LeagueID)
	}
	if q.Season != 0 {
		params["season"] = strconv.Itoa(q.Season)
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.Next != 0 {
		params["next"] = strconv.Itoa(q.Next)
	}

	var entries []fixtureEntry
	if err := c.get(ctx, "/fixtures", params, &entries); err != nil {
		return nil, err
	}

	records := make([]prediction.FixtureRecord, 0, len(entries))
	for _, e := range entries {
		kickoff, err := time.Parse(time.RFC3339, e.Fixture.Date)
		if err != nil {
			logger.Warn("Skipping fixture with unparseable date:", e.Fixture.ID, e.Fixture.Date)
			continue
		}
		records = append(records, prediction.FixtureRecord{
			ID:        e.Fixture.ID,
			Kickoff:   kickoff,
			Status:    e.Fixture.Status.Short,
			HomeID:    e.Teams.Home.ID,
			AwayID:    e.Teams.Away.ID,
			HomeName:  e.Teams.Home.Name,
			AwayName:  e.Teams.Away.Name,
			HomeGoals: e.Goals.Home,
			AwayGoals: e.Goals.Away,
			Venue:     e.Fixture.Venue.Name,
		})
	}
	return records, nil
}
