package prediction

// LeagueCatalogEntry describes one league the fixture listing covers.
// SportKey is empty for leagues the odds provider does not quote.
type LeagueCatalogEntry struct {
	Country  string `json:"country"`
	League   string `json:"league"`
	SportKey string `json:"sportKey,omitempty"`
}

// DefaultSportKeys maps the leagues the odds provider quotes to its sport
// identifiers. Injected into the reconciler at construction so it can be
// extended without touching pipeline logic.
func DefaultSportKeys() map[string]string {
	return map[string]string{
		"England|Premier League":   "soccer_epl",
		"Spain|La Liga":            "soccer_spain_la_liga",
		"Italy|Serie A":            "soccer_italy_serie_a",
		"Germany|Bundesliga":       "soccer_germany_bundesliga",
		"France|Ligue 1":           "soccer_france_ligue_one",
		"Netherlands|Eredivisie":   "soccer_netherlands_eredivisie",
		"Portugal|Primeira Liga":   "soccer_portugal_primeira_liga",
		"Turkey|Super Lig":         "soccer_turkey_super_lig",
		"USA|MLS":                  "soccer_usa_mls",
		"UEFA|Champions League":    "soccer_uefa_champs_league",
		"Scotland|Premiership":     "soccer_scotland_premiership",
		"Austria|Bundesliga":       "soccer_austria_bundesliga",
		"Switzerland|Super League": "soccer_switzerland_superleague",
		"Sweden|Allsvenskan":       "soccer_sweden_allsvenskan",
	}
}

// DefaultLeagueCatalog lists the European leagues (tier 1-3) the
// upcoming-fixtures feed covers
func DefaultLeagueCatalog() []LeagueCatalogEntry {
	return []LeagueCatalogEntry{
		// England
		{Country: "England", League: "Premier League", SportKey: "soccer_epl"},
		{Country: "England", League: "Championship"},
		{Country: "England", League: "League One"},

		// Scotland
		{Country: "Scotland", League: "Premiership", SportKey: "soccer_scotland_premiership"},
		{Country: "Scotland", League: "Championship"},
		{Country: "Scotland", League: "League One"},

		// Spain
		{Country: "Spain", League: "La Liga", SportKey: "soccer_spain_la_liga"},
		{Country: "Spain", League: "La Liga 2"},

		// Italy
		{Country: "Italy", League: "Serie A", SportKey: "soccer_italy_serie_a"},
		{Country: "Italy", League: "Serie B"},

		// Germany
		{Country: "Germany", League: "Bundesliga", SportKey: "soccer_germany_bundesliga"},
		{Country: "Germany", League: "2. Bundesliga"},
		{Country: "Germany", League: "3. Liga"},

		// France
		{Country: "France", League: "Ligue 1", SportKey: "soccer_france_ligue_one"},
		{Country: "France", League: "Ligue 2"},

		// Netherlands
		{Country: "Netherlands", League: "Eredivisie", SportKey: "soccer_netherlands_eredivisie"},
		{Country: "Netherlands", League: "Eerste Divisie"},

		// Portugal
		{Country: "Portugal", League: "Primeira Liga", SportKey: "soccer_portugal_primeira_liga"},
		{Country: "Portugal", League: "Liga Portugal 2"},

		// Turkey
		{Country: "Turkey", League: "Super Lig", SportKey: "soccer_turkey_super_lig"},

		// Austria
		{Country: "Austria", League: "Bundesliga", SportKey: "soccer_austria_bundesliga"},
		{Country: "Austria", League: "2. Liga"},

		// Switzerland
		{Country: "Switzerland", League: "Super League", SportKey: "soccer_switzerland_superleague"},
		{Country: "Switzerland", League: "Challenge League"},

		// Sweden
		{Country: "Sweden", League: "Allsvenskan", SportKey: "soccer_sweden_allsvenskan"},
		{Country: "Sweden", League: "Superettan"},

		// Hungary
		{Country: "Hungary", League: "NB I"},
		{Country: "Hungary", League: "NB II"},

		// Bulgaria
		{Country: "Bulgaria", League: "First League"},
		{Country: "Bulgaria", League: "Second League"},
	}
}
