package storage

import (
	"testing"

	"github.com/foryourmind/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultAssessment() *models.WellnessAssessment {
	return &models.WellnessAssessment{
		ID:        "a1",
		Type:      "comprehensive",
		Questions: DefaultQuestions(),
	}
}

func TestDefaultQuestions(t *testing.T) {
	t.Parallel()

	qs := DefaultQuestions()
	require.Len(t, qs, 10)

	perCategory := map[string]int{}
	for _, q := range qs {
		perCategory[q.Category]++
		assert.Len(t, q.Options, 5)
	}
	require.Len(t, perCategory, 5)
	for cat, n := range perCategory {
		assert.Equal(t, 2, n, "category %s", cat)
	}
}

func TestScoreAssessment_AllMax(t *testing.T) {
	t.Parallel()

	a := defaultAssessment()
	answers := map[string]int{}
	for _, q := range a.Questions {
		answers[q.ID] = 5
	}

	score, categories, recs := ScoreAssessment(a, answers)
	assert.Equal(t, 10.0, score)
	for cat, avg := range categories {
		assert.Equal(t, 5.0, avg, "category %s", cat)
	}
	// Nothing below threshold, so exactly one general positive message.
	require.Len(t, recs, 1)
}

func TestScoreAssessment_LowCategoryGetsRecommendation(t *testing.T) {
	t.Parallel()

	a := defaultAssessment()
	answers := map[string]int{}
	for _, q := range a.Questions {
		if q.Category == models.CategorySleep {
			answers[q.ID] = 1
		} else {
			answers[q.ID] = 4
		}
	}

	score, categories, recs := ScoreAssessment(a, answers)
	assert.Equal(t, 1.0, categories[models.CategorySleep])
	assert.Equal(t, 4.0, categories[models.CategoryMood])
	require.Len(t, recs, 1, "only the below-threshold category is flagged")
	assert.Equal(t, recommendationFor[models.CategorySleep], recs[0])
	assert.InDelta(t, 6.8, score, 0.001)
}

func TestScoreAssessment_ClampsAndDefaults(t *testing.T) {
	t.Parallel()

	a := defaultAssessment()

	// No answers at all: every question counts as the scale minimum.
	score, categories, recs := ScoreAssessment(a, map[string]int{})
	assert.Equal(t, 2.0, score)
	for _, avg := range categories {
		assert.Equal(t, 1.0, avg)
	}
	assert.Len(t, recs, 5)

	// Out-of-range answers clamp to the scale.
	answers := map[string]int{}
	for _, q := range a.Questions {
		answers[q.ID] = 99
	}
	score, _, _ = ScoreAssessment(a, answers)
	assert.Equal(t, 10.0, score)
}

func TestCompatibility(t *testing.T) {
	t.Parallel()

	a := Compatibility("user-1", "user-2")
	b := Compatibility("user-2", "user-1")
	assert.Equal(t, a, b, "score must be symmetric")
	assert.GreaterOrEqual(t, a, 0.5)
	assert.Less(t, a, 1.0)

	again := Compatibility("user-1", "user-2")
	assert.Equal(t, a, again, "score must be deterministic")
}

func TestSortSuggestions(t *testing.T) {
	t.Parallel()

	s := []*models.BuddySuggestion{
		{UserID: "b", Compatibility: 0.6},
		{UserID: "a", Compatibility: 0.9},
		{UserID: "d", Compatibility: 0.6},
		{UserID: "c", Compatibility: 0.7},
	}
	SortSuggestions(s)

	assert.Equal(t, "a", s[0].UserID)
	assert.Equal(t, "c", s[1].UserID)
	// Ties break by user id.
	assert.Equal(t, "b", s[2].UserID)
	assert.Equal(t, "d", s[3].UserID)
}
