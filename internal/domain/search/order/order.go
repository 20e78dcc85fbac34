// Package order sorts consultants by sort key.
package order

import (
	"sort"

	"github.com/findbrexitconsultants/directory/internal/domain/consultant"
	"github.com/findbrexitconsultants/directory/internal/domain/search/sortkey"
)

// Less orders two consultants. It is a strict weak ordering.
type Less func(a, b consultant.Consultant) bool

// compare returns <0 when a sorts before b, >0 after, 0 when the key ties.
type compare func(a, b consultant.Consultant) int

// By returns the comparator of k. Every comparator breaks ties by creation time
// (newest first) and finally by id, so repeated calls page identically.
func By(k sortkey.Key) Less {
	primary := keyCompare(k)
	return func(a, b consultant.Consultant) bool {
		if c := primary(a, b); c != 0 {
			return c < 0
		}
		if c := newestFirst(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}
}

// Sort orders cs in place by k.
func Sort(cs []consultant.Consultant, k sortkey.Key) {
	less := By(k)
	sort.SliceStable(cs, func(i, j int) bool { return less(cs[i], cs[j]) })
}

// Base orders cs in place the way a full scan returns them:
// featured first, then most viewed, then newest.
func Base(cs []consultant.Consultant) {
	Sort(cs, sortkey.Relevance)
}

func keyCompare(k sortkey.Key) compare {
	switch k {
	case sortkey.Featured:
		return featuredFirst
	case sortkey.Rating:
		return bestRated
	case sortkey.ResponseTime:
		return fastestResponse
	case sortkey.Newest:
		return func(consultant.Consultant, consultant.Consultant) int { return 0 }
	default:
		return chain(featuredFirst, mostViewed)
	}
}

func chain(cmps ...compare) compare {
	return func(a, b consultant.Consultant) int {
		for _, c := range cmps {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func featuredFirst(a, b consultant.Consultant) int {
	switch {
	case a.Featured == b.Featured:
		return 0
	case a.Featured:
		return -1
	default:
		return 1
	}
}

func mostViewed(a, b consultant.Consultant) int {
	return desc(a.ProfileViews, b.ProfileViews)
}

func bestRated(a, b consultant.Consultant) int {
	if c := desc(a.Rating.Average, b.Rating.Average); c != 0 {
		return c
	}
	return desc(a.Rating.Count, b.Rating.Count)
}

// fastestResponse puts consultants without a stated response time last.
func fastestResponse(a, b consultant.Consultant) int {
	switch {
	case a.ResponseTimeHours == nil && b.ResponseTimeHours == nil:
		return 0
	case a.ResponseTimeHours == nil:
		return 1
	case b.ResponseTimeHours == nil:
		return -1
	}
	return -desc(*a.ResponseTimeHours, *b.ResponseTimeHours)
}

func newestFirst(a, b consultant.Consultant) int {
	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return -1
	case b.CreatedAt.After(a.CreatedAt):
		return 1
	}
	return 0
}

func desc[T int | int64 | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
