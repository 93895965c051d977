package prediction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InferSeason maps a calendar date to the single-year season label using
// the European convention: July onwards belongs to that year's season,
// January to June still belongs to the previous year's.
// An empty date means the current UTC year.
func InferSeason(dateISO string) (int, error) {
	if dateISO == "" {
		return time.Now().UTC().Year(), nil
	}
	parts := strings.SplitN(dateISO, "-", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid date format: %s", dateISO)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid year in date %s: %w", dateISO, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid month in date %s: %w", dateISO, err)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month out of range in date %s", dateISO)
	}
	if month >= 7 {
		return year, nil
	}
	return year - 1, nil
}
