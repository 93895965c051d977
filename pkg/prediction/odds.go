package prediction

import (
	"context"
	"math"
	"strings"

	"goalline/internal/logger"
)

// OddsQuote is the bookmaker totals quote closest to the requested line
type OddsQuote struct {
	BookmakerID  string  `json:"bookmakerId"`
	QuotedLine   float64 `json:"quotedLine"`
	OverPrice    float64 `json:"overPrice"`
	UnderPrice   float64 `json:"underPrice"`
	LineDistance float64 `json:"lineDistance"`
}

// Reconciler cross-references a market snapshot against the requested
// total line. The sport-key table maps (country, league) to the market
// provider's sport identifier and is injected at construction.
type Reconciler struct {
	provider  OddsProvider
	sportKeys map[string]string // "country|league" -> sport key
}

func NewReconciler(provider OddsProvider, sportKeys map[string]string) *Reconciler {
	return &Reconciler{provider: provider, sportKeys: sportKeys}
}

// SportKey resolves the market sport key for a league. Unmapped leagues
// mean no market lookup happens at all.
func (r *Reconciler) SportKey(country, league string) (string, bool) {
	key, ok := r.sportKeys[LeagueKey(country, league)]
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// FindClosestTotal scans the snapshot for the fixture's event and selects
// the quote whose line is nearest the requested one. Returns nil when no
// matching event offers both sides of any line.
func (r *Reconciler) FindClosestTotal(ctx context.Context, eventHome, eventAway, sportKey string, requestedLine float64) (*OddsQuote, error) {
	if r.provider == nil {
		return nil, nil
	}
	events, err := r.provider.Events(ctx, sportKey)
	if err != nil {
		logger.Warn("Odds snapshot fetch failed:", sportKey, err)
		return nil, err
	}

	var best *OddsQuote
	for _, ev := range events {
		if !sameEventName(ev.HomeTeam, eventHome) || !sameEventName(ev.AwayTeam, eventAway) {
			continue
		}
		for _, bm := range ev.Bookmakers {
			for _, quote := range pairedLines(bm) {
				quote.LineDistance = math.Abs(quote.QuotedLine - requestedLine)
				// strict less-than keeps the first-encountered quote on ties
				if best == nil || quote.LineDistance < best.LineDistance {
					q := quote
					best = &q
				}
			}
		}
	}
	return best, nil
}

// pairedLines groups a bookmaker's outcomes by line and keeps lines
// quoting both an over and an under
func pairedLines(bm BookmakerOdds) []OddsQuote {
	type sides struct {
		over, under float64
		hasO, hasU  bool
	}
	byLine := make(map[float64]*sides)
	var order []float64
	for _, o := range bm.Totals {
		s, ok := byLine[o.Line]
		if !ok {
			s = &sides{}
			byLine[o.Line] = s
			order = append(order, o.Line)
		}
		switch strings.ToLower(strings.TrimSpace(o.Side)) {
		case "over":
			if !s.hasO {
				s.over = o.Price
				s.hasO = true
			}
		case "under":
			if !s.hasU {
				s.under = o.Price
				s.hasU = true
			}
		}
	}

	var quotes []OddsQuote
	for _, line := range order {
		s := byLine[line]
		if s.hasO && s.hasU {
			quotes = append(quotes, OddsQuote{
				BookmakerID: bm.Key,
				QuotedLine:  line,
				OverPrice:   s.over,
				UnderPrice:  s.under,
			})
		}
	}
	return quotes
}

// sameEventName compares names case-insensitively and whitespace-trimmed
func sameEventName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
