package game

import (
	"fmt"
	"sort"
	"strings"

	"quizroom/internal/domain"
)

// courseSuggestions maps a skill area to the courses worth suggesting when
// a player scores best in it.
var courseSuggestions = map[string]string{
	"Programming Logic":     "Computer Engineering, Computer Science",
	"Computer Networks":     "Computer Engineering",
	"Discrete Mathematics":  "Computer Engineering",
	"Computer Architecture": "Computer Engineering",
	"Building Materials":    "Civil Engineering",
	"Thermodynamics":        "Mechanical Engineering, Aerospace Engineering",
	"Aerodynamics":          "Aerospace Engineering",
	"Waste Management":      "Environmental Engineering",
	"Traffic Engineering":   "Transportation Engineering",
	"Geometry":              "any engineering field",
	"Thermal Physics":       "Mechanical Engineering, Materials Engineering",
	"Basic Statistics":      "any engineering field",
	"General Knowledge":     "any field",
}

// recommendationFor tallies a player's correct answers per skill area and
// suggests courses for the strongest one. Ties go to the skill whose
// questions appear first in the challenge, which keeps the pick
// deterministic for a fixed question order.
func recommendationFor(answers map[string]domain.Answer, questions []domain.Question) string {
	if len(answers) == 0 {
		return "No answers recorded."
	}

	counts := make(map[string]int)
	var skillOrder []string
	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok || !a.Correct {
			continue
		}
		if _, seen := counts[a.SkillArea]; !seen {
			skillOrder = append(skillOrder, a.SkillArea)
		}
		counts[a.SkillArea]++
	}
	if len(counts) == 0 {
		return "No correct answers to suggest an area."
	}

	best := skillOrder[0]
	for _, skill := range skillOrder[1:] {
		if counts[skill] > counts[best] {
			best = skill
		}
	}

	suggestion, ok := courseSuggestions[best]
	if !ok {
		suggestion = "related areas"
	}

	sort.SliceStable(skillOrder, func(i, j int) bool { return counts[skillOrder[i]] > counts[skillOrder[j]] })
	top := skillOrder
	if len(top) > 3 {
		top = top[:3]
	}
	highlights := make([]string, len(top))
	for i, skill := range top {
		highlights[i] = fmt.Sprintf("%s: %d correct", skill, counts[skill])
	}

	return fmt.Sprintf("You stood out in '%s'. Courses such as %s could be a good fit. Your strongest areas: %s.",
		best, suggestion, strings.Join(highlights, "; "))
}
