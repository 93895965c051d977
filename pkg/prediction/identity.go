package prediction

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"goalline/internal/logger"
)

// TeamIdentity is a resolved team. ProviderID == 0 signals the team could
// not be resolved; downstream components must then use their defaults.
type TeamIdentity struct {
	DisplayName string `json:"displayName"`
	ProviderID  int    `json:"providerId,omitempty"`
	HomeCity    string `json:"homeCity,omitempty"`
	HomeCountry string `json:"homeCountry,omitempty"`
}

// Resolved reports whether the team was mapped to a provider identifier
func (t TeamIdentity) Resolved() bool {
	return t.ProviderID != 0
}

// LeagueIdentity is a resolved league. The static override table is
// authoritative; a table hit always wins over any provider search.
type LeagueIdentity struct {
	Country    string `json:"country"`
	Name       string `json:"name"`
	ProviderID int    `json:"providerId,omitempty"`
}

func (l LeagueIdentity) Resolved() bool {
	return l.ProviderID != 0
}

// Resolver maps free-text team and league names to stable provider
// identifiers. Resolved identities are cached by lookup key for the
// lifetime of the resolver, which is one pipeline run.
type Resolver struct {
	provider MatchProvider
	fallback TeamSearcher   // optional last-resort team search
	leagues  map[string]int // "country|league" -> provider id, injected

	mu          sync.Mutex
	teamCache   map[string]TeamIdentity
	leagueCache map[string]LeagueIdentity
}

// NewResolver builds a resolver around the match provider. leagueTable is
// the static country+league override map (may be nil); fallback may be nil.
func NewResolver(provider MatchProvider, leagueTable map[string]int, fallback TeamSearcher) *Resolver {
	return &Resolver{
		provider:    provider,
		fallback:    fallback,
		leagues:     leagueTable,
		teamCache:   make(map[string]TeamIdentity),
		leagueCache: make(map[string]LeagueIdentity),
	}
}

// LeagueKey builds the lookup key for the static league table
func LeagueKey(country, league string) string {
	return country + "|" + league
}

// ResolveTeam maps a team name to a TeamIdentity. An exact match on the
// provider search wins; otherwise candidates are scored fuzzily and the
// best one is taken. Failure is not fatal: the identity comes back with
// ProviderID zero.
func (r *Resolver) ResolveTeam(ctx context.Context, name string) TeamIdentity {
	key := "team|" + normalizeName(name)
	r.mu.Lock()
	if cached, ok := r.teamCache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	identity := TeamIdentity{DisplayName: name}

	candidates, err := r.provider.SearchTeam(ctx, name)
	if err != nil {
		logger.Warn("Team search failed, continuing unresolved:", name, err)
		candidates = nil
	}
	if len(candidates) == 0 && r.fallback != nil {
		candidates, err = r.fallback.SearchTeam(ctx, name)
		if err != nil {
			logger.Warn("Fallback team search failed:", name, err)
			candidates = nil
		}
	}

	if best, ok := bestTeamCandidate(name, candidates); ok {
		identity.ProviderID = best.ID
		identity.HomeCity = best.City
		identity.HomeCountry = best.Country
	}

	r.mu.Lock()
	r.teamCache[key] = identity
	r.mu.Unlock()
	return identity
}

// bestTeamCandidate picks the exact normalized match if present, else the
// highest-scoring fuzzy candidate
func bestTeamCandidate(name string, candidates []TeamRecord) (TeamRecord, bool) {
	norm := normalizeName(name)
	for _, c := range candidates {
		if normalizeName(c.Name) == norm {
			return c, true
		}
	}
	var best TeamRecord
	bestScore := 0.0
	for _, c := range candidates {
		score := similarity(name, c.Name)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore > 0 {
		return best, true
	}
	return TeamRecord{}, false
}

// ResolveLeague maps country+league to a LeagueIdentity for the given
// season. Consultation order: static table, provider search by
// country+name+season, then a free-text search accepting the first result
// whose country matches case-insensitively.
func (r *Resolver) ResolveLeague(ctx context.Context, country, league string, season int) LeagueIdentity {
	key := fmt.Sprintf("league|%s|%s|%d", normalizeName(country), normalizeName(league), season)
	r.mu.Lock()
	if cached, ok := r.leagueCache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	identity := LeagueIdentity{Country: country, Name: league}

	if id, ok := r.leagues[LeagueKey(country, league)]; ok {
		identity.ProviderID = id
	} else {
		identity.ProviderID = r.searchLeague(ctx, country, league, season)
	}

	r.mu.Lock()
	r.leagueCache[key] = identity
	r.mu.Unlock()
	return identity
}

func (r *Resolver) searchLeague(ctx context.Context, country, league string, season int) int {
	records, err := r.provider.SearchLeague(ctx, country, league, season)
	if err != nil {
		logger.Warn("League search failed:", country, league, err)
	} else if len(records) > 0 {
		return records[0].ID
	}

	// free-text search across countries, keep the first whose country matches
	records, err = r.provider.SearchLeague(ctx, "", league, 0)
	if err != nil {
		logger.Warn("Free-text league search failed:", league, err)
		return 0
	}
	for _, rec := range records {
		if strings.EqualFold(strings.TrimSpace(rec.Country), strings.TrimSpace(country)) {
			return rec.ID
		}
	}
	return 0
}

// normalizeName lowercases and strips everything but letters and digits
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// similarity scores two names as shared-prefix length over the longer
// normalized form, in [0, 1]
func similarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	maxLen := len(na)
	if len(nb) > maxLen {
		maxLen = len(nb)
	}
	if maxLen == 0 {
		return 0
	}
	prefix := 0
	for prefix < len(na) && prefix < len(nb) && na[prefix] == nb[prefix] {
		prefix++
	}
	return float64(prefix) / float64(maxLen)
}
