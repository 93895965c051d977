// Package fotmob is the last-resort team search used when the primary
// match provider finds nothing. It tries the public search endpoint first
// and falls back to scraping the embedded __NEXT_DATA__ payload from the
// search results page.
package fotmob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"goalline/internal/logger"
	"goalline/pkg/prediction"
	"goalline/pkg/transport"
)

type Searcher struct {
	apiURL  string
	pageURL string
	http    *transport.Client
}

var _ prediction.TeamSearcher = (*Searcher)(nil)

func New(httpClient *transport.Client) *Searcher {
	return &Searcher{
		apiURL:  "https://www.fotmob.com/api/searchData",
		pageURL: "https://www.fotmob.com/en-GB/search",
		http:    httpClient,
	}
}

// NewWithURLs is used by tests to point the searcher at a local server
func NewWithURLs(apiURL, pageURL string, httpClient *transport.Client) *Searcher {
	return &Searcher{apiURL: apiURL, pageURL: pageURL, http: httpClient}
}

// SearchTeam returns team candidates for a free-text name
func (s *Searcher) SearchTeam(ctx context.Context, name string) ([]prediction.TeamRecord, error) {
	records, err := s.searchAPI(ctx, name)
	if err == nil && len(records) > 0 {
		return records, nil
	}
	if err != nil {
		logger.Debug("Search endpoint failed, scraping search page:", err)
	}
	return s.scrapeSearchPage(ctx, name)
}

func (s *Searcher) searchAPI(ctx context.Context, name string) ([]prediction.TeamRecord, error) {
	u, err := transport.BuildURL(s.apiURL, map[string]string{"term": name})
	if err != nil {
		return nil, err
	}
	body, err := s.http.Get(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode search payload: %w", err)
	}
	return collectTeams(payload), nil
}

// scrapeSearchPage pulls the __NEXT_DATA__ script from the HTML search
// results and digs team candidates out of it
func (s *Searcher) scrapeSearchPage(ctx context.Context, name string) ([]prediction.TeamRecord, error) {
	pageURL := s.pageURL + "?q=" + url.QueryEscape(name)
	body, err := s.http.Get(ctx, pageURL, map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("error parsing search page: %w", err)
	}

	var scriptData string
	doc.Find("script#__NEXT_DATA__").Each(func(i int, sel *goquery.Selection) {
		scriptData = sel.Text()
	})
	if scriptData == "" {
		return nil, fmt.Errorf("could not find __NEXT_DATA__ script tag")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(scriptData), &data); err != nil {
		return nil, fmt.Errorf("error parsing __NEXT_DATA__ JSON: %w", err)
	}
	return collectTeams(data), nil
}

// collectTeams walks arbitrary JSON looking for arrays keyed "teams" whose
// entries carry an id and a name. The payload shape drifts, so the walk is
// deliberately tolerant.
func collectTeams(node any) []prediction.TeamRecord {
	var records []prediction.TeamRecord
	var walk func(any)
	walk = func(n any) {
		switch v := n.(type) {
		case map[string]any:
			for key, child := range v {
				if strings.EqualFold(key, "teams") {
					if arr, ok := child.([]any); ok {
						for _, item := range arr {
							if rec, ok := teamFromItem(item); ok {
								records = append(records, rec)
							}
						}
						continue
					}
				}
				walk(child)
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(node)
	return records
}

func teamFromItem(item any) (prediction.TeamRecord, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return prediction.TeamRecord{}, false
	}
	id, ok := asInt(m["id"])
	if !ok || id == 0 {
		return prediction.TeamRecord{}, false
	}
	name, _ := m["name"].(string)
	if name == "" {
		return prediction.TeamRecord{}, false
	}
	return prediction.TeamRecord{ID: id, Name: name}, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
