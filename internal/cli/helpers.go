package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aidanlsb/datekit/internal/datekit"
	"github.com/aidanlsb/datekit/internal/dates"
	"github.com/aidanlsb/datekit/internal/pattern"
	"github.com/aidanlsb/datekit/internal/slugs"
)

const parseSuggestion = "Try an ISO date such as 2010-07-19 or a phrase like '3 days ago'"

// parseArg parses text with the shared Kit. On failure it returns the error
// already routed through handleError/handleErrorWithDetails, so callers can
// return it directly; ok is false in that case.
func parseArg(k *datekit.Kit, text string) (pattern.Result, bool, error) {
	r, err := k.Recognize(text)
	if err == nil {
		return r, true, nil
	}

	var perr *pattern.ParseError
	if errors.As(err, &perr) && len(perr.Matched) > 0 {
		return r, false, handleErrorWithDetails(ErrParseFailed, err.Error(), parseSuggestion,
			map[string]any{"input": perr.Input, "declined": perr.Matched})
	}
	return r, false, handleError(ErrParseFailed, err, parseSuggestion)
}

// normalizeUnit lower-cases unit and checks it against the unit table.
func normalizeUnit(raw string) (string, error) {
	unit := strings.ToLower(strings.TrimSpace(raw))
	if !dates.KnownUnit(unit) {
		return "", fmt.Errorf("unknown unit %q", raw)
	}
	return unit, nil
}

func unitSuggestion() string {
	return "Units: " + strings.Join(dates.UnitNames(), ", ") + " (plurals accepted)"
}

// dateData is the JSON shape of a date.
func dateData(d dates.Date) map[string]any {
	return map[string]any{
		"date":       d.String(),
		"unix":       d.Unix(),
		"millis":     d.Millis(),
		"utc_offset": d.UTCOffset(),
		"timezone":   d.TimezoneName(),
	}
}

// formatNumber prints integers without a decimal point.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// removePatterns drops the named patterns from the Kit's registry for the
// rest of this invocation.
func removePatterns(k *datekit.Kit, names []string) error {
	for _, name := range slugs.Names(names) {
		if _, ok := k.Patterns().Remove(name); !ok {
			return errors.Wrapf(pattern.ErrNotFound, "%s", name)
		}
	}
	return nil
}
