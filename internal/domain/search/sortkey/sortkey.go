package sortkey

import "strings"

// Key selects the result ordering.
type Key string

// Sort key constants.
const (
	// Relevance ranks featured listings first, then by profile views.
	Relevance    Key = "relevance"
	Featured     Key = "featured"
	Rating       Key = "rating"
	ResponseTime Key = "response_time"
	Newest       Key = "newest"
)

// IsValid checks if the key is one of the supported values.
func (k Key) IsValid() bool {
	switch k {
	case Relevance, Featured, Rating, ResponseTime, Newest:
		return true
	}
	return false
}

// Parse converts raw input into a Key. Empty or unknown input yields Relevance.
func Parse(raw string) Key {
	k := Key(strings.ToLower(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return Relevance
	}
	return k
}
