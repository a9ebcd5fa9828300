package storage

import (
	"math"

	"github.com/foryourmind/server/internal/models"
)

// scaleOptions is the 1..5 answer scale used by every default question.
// The submitted answer is the 1-based index into this list.
var scaleOptions = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

// DefaultQuestions returns the 10-question comprehensive assessment all
// engines provision for a new user. Two questions per category.
func DefaultQuestions() []models.AssessmentQuestion {
	qs := []struct {
		id, text, category string
	}{
		{"q1", "I fall asleep easily and sleep through the night", models.CategorySleep},
		{"q2", "I wake up feeling rested", models.CategorySleep},
		{"q3", "I feel able to cope with the demands of my day", models.CategoryStress},
		{"q4", "I can unwind after a stressful situation", models.CategoryStress},
		{"q5", "My overall mood has been positive", models.CategoryMood},
		{"q6", "I find enjoyment in my usual activities", models.CategoryMood},
		{"q7", "I have enough energy to get things done", models.CategoryEnergy},
		{"q8", "I feel physically well", models.CategoryEnergy},
		{"q9", "I feel connected to the people around me", models.CategorySocial},
		{"q10", "I have someone to talk to when things are hard", models.CategorySocial},
	}

	out := make([]models.AssessmentQuestion, 0, len(qs))
	for _, q := range qs {
		out = append(out, models.AssessmentQuestion{
			ID:       q.id,
			Text:     q.text,
			Category: q.category,
			Options:  scaleOptions,
		})
	}
	return out
}

// recommendationFor maps a below-threshold category to advice text.
var recommendationFor = map[string]string{
	models.CategorySleep:  "Try a consistent wind-down routine and limit screens before bed.",
	models.CategoryStress: "Consider short daily breathing exercises or a guided relaxation course.",
	models.CategoryMood:   "Journaling a few minutes a day can help surface what is weighing on you.",
	models.CategoryEnergy: "Light movement and regular meals often help with low energy.",
	models.CategorySocial: "Reaching out to one person this week, or a support buddy, can help.",
}

// recommendationThreshold is the category average (on the 1..5 scale) below
// which a recommendation is generated.
const recommendationThreshold = 3.0

// ScoreAssessment computes the normalized total (0..10, one decimal),
// per-category averages and recommendations for a set of answers against an
// assessment. Unanswered questions count as the scale minimum. All three
// engines call this so scoring has one source of truth.
func ScoreAssessment(a *models.WellnessAssessment, answers map[string]int) (float64, map[string]float64, []string) {
	sums := map[string]float64{}
	counts := map[string]int{}
	var order []string
	total := 0.0

	for _, q := range a.Questions {
		v := answers[q.ID]
		if v < 1 {
			v = 1
		}
		if v > len(q.Options) {
			v = len(q.Options)
		}
		if counts[q.Category] == 0 {
			order = append(order, q.Category)
		}
		sums[q.Category] += float64(v)
		counts[q.Category]++
		total += float64(v)
	}

	maxTotal := float64(len(a.Questions) * len(scaleOptions))
	score := 0.0
	if maxTotal > 0 {
		score = math.Round(total/maxTotal*100) / 10
	}

	categoryScores := make(map[string]float64, len(sums))
	var recommendations []string
	for _, cat := range order {
		avg := math.Round(sums[cat]/float64(counts[cat])*10) / 10
		categoryScores[cat] = avg
		if avg < recommendationThreshold {
			recommendations = append(recommendations, recommendationFor[cat])
		}
	}
	if len(recommendations) == 0 {
		recommendations = []string{"You are doing well across the board. Keep up your current habits."}
	}

	return score, categoryScores, recommendations
}
