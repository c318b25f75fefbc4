package geocode

import "strings"

type alias struct {
	wrong, right string
}

// Common misspellings and historical names. Order is significant: each
// entry is applied once, in sequence, to the lower-cased text.
var defaultAliases = []alias{
	{"benglore", "bangalore"},
	{"bangaluru", "bangalore"},
	{"bombay", "mumbai"},
	{"calcutta", "kolkata"},
	{"madras", "chennai"},
	{"poona", "pune"},
	{"mysore", "mysuru"},
	{"trivandrum", "thiruvananthapuram"},
}

// Correct lower-cases text and replaces the first occurrence of every
// known alias.
func Correct(text string) string {
	corrected := strings.ToLower(text)
	for _, a := range defaultAliases {
		if strings.Contains(corrected, a.wrong) {
			corrected = strings.Replace(corrected, a.wrong, a.right, 1)
		}
	}
	return corrected
}
