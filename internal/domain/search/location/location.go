// Package location maps user-facing location slugs to the city values stored on
// consultant records. Display, filtering and SQL pushdown all read this table.
package location

import (
	"sort"
	"strings"
)

// Location is one entry of the slug table.
type Location struct {
	Slug string
	City string
}

var cities = map[string]string{
	"london":           "London",
	"manchester":       "Manchester",
	"birmingham":       "Birmingham",
	"scotland":         "Scotland",
	"wales":            "Wales",
	"northern-ireland": "Northern Ireland",
	"edinburgh":        "Edinburgh",
	"cardiff":          "Cardiff",
	"belfast":          "Belfast",
}

// City resolves a slug to its stored city value.
// Unknown slugs are returned unchanged and treated as a literal city name.
func City(slug string) string {
	if city, ok := cities[strings.ToLower(slug)]; ok {
		return city
	}
	return slug
}

// Cities resolves every slug, dropping duplicate targets.
func Cities(slugs []string) []string {
	if len(slugs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, s := range slugs {
		c := City(s)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// All returns the table ordered by slug.
func All() []Location {
	out := make([]Location, 0, len(cities))
	for slug, city := range cities {
		out = append(out, Location{Slug: slug, City: city})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
