package storage

import (
	"sort"

	"github.com/foryourmind/server/internal/models"
)

// Compatibility derives a stable pseudo-score in [0.5, 1.0) from an id pair.
// It is symmetric in its arguments so both sides of a match see the same
// number, and deterministic so suggestions do not reshuffle between calls.
func Compatibility(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	var h uint32 = 2166136261
	for _, c := range a + ":" + b {
		h ^= uint32(c)
		h *= 16777619
	}
	return 0.5 + float64(h%500)/1000
}

// SortSuggestions orders buddy suggestions by descending compatibility,
// breaking ties by user id for stable output.
func SortSuggestions(s []*models.BuddySuggestion) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Compatibility != s[j].Compatibility {
			return s[i].Compatibility > s[j].Compatibility
		}
		return s[i].UserID < s[j].UserID
	})
}
