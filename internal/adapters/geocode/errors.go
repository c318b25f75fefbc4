package geocode

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when no fallback strategy resolved the query.
// Suggestion is meant to be shown to the user verbatim.
type NotFoundError struct {
	Query      string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location %q not found. %s", e.Query, e.Suggestion)
}

// suggestionFor picks a hint for well-known ambiguous city names.
func suggestionFor(query, countryName string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "bangalore") || strings.Contains(q, "bengaluru"):
		return fmt.Sprintf(`Try "Bangalore" or "Bengaluru, Karnataka, %s"`, countryName)
	case strings.Contains(q, "mumbai") || strings.Contains(q, "bombay"):
		return fmt.Sprintf(`Try "Mumbai, Maharashtra, %s"`, countryName)
	case strings.Contains(q, "delhi"):
		return fmt.Sprintf(`Try "New Delhi, %s" or "Delhi, %s"`, countryName, countryName)
	default:
		return fmt.Sprintf(`Try adding the state name like "%s, [State], %s"`, query, countryName)
	}
}
