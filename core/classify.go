package core

import (
	"strings"

	"github.com/cadencehq/cadence/schema"
)

// keywordRule maps a set of subject keywords to a category.
type keywordRule struct {
	category schema.Category
	keywords []string
}

// classifierRules is evaluated in order; the first keyword hit wins.
// The ordering is load-bearing: a subject containing both "training" and
// "1:1" classifies as Training because Training is checked first, and the
// attendee-count fallback only applies when no keyword matches at all.
var classifierRules = []keywordRule{
	{schema.CategoryStandUp, []string{"stand-up", "standup", "daily scrum", "daily-scrum"}},
	{schema.CategoryRetrospective, []string{"retro"}},
	{schema.CategoryPlanning, []string{"planning", "sprint-plan", "sprint plan"}},
	{schema.CategoryReview, []string{"review", "demo"}},
	{schema.CategoryBrainstorm, []string{"brainstorm", "ideation"}},
	{schema.CategoryInterview, []string{"interview"}},
	{schema.CategoryTraining, []string{"training", "workshop", "learning"}},
	{schema.CategoryOneOnOne, []string{"1:1", "one on one", "1-on-1", "one-on-one"}},
}

// Classify infers a meeting category from the subject and participant
// count. Keyword matching is case-insensitive substring search with fixed
// precedence; when no keyword matches, two or fewer attendees means a
// one-on-one, anything larger a team meeting. Pure function.
func Classify(subject string, attendeeCount int) schema.Category {
	lowered := strings.ToLower(subject)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.category
			}
		}
	}

	if attendeeCount <= 2 {
		return schema.CategoryOneOnOne
	}
	return schema.CategoryTeamMeeting
}
