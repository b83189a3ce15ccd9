// Package resources serves the static support catalog: crisis helplines,
// self-help exercises, and short educational notes.
package resources

import "github.com/wolfman30/saathi/internal/crisis"

// Exercise is a self-help technique a user can try on their own.
type Exercise struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

// Article is a short piece of psychoeducation.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Catalog groups everything returned by GET /api/resources.
type Catalog struct {
	Crisis      []crisis.Helpline `json:"crisis"`
	SelfHelp    []Exercise        `json:"selfHelp"`
	Educational []Article         `json:"educational"`
}

var selfHelp = []Exercise{
	{
		Type:         "breathing",
		Name:         "4-7-8 Breathing",
		Description:  "Inhale 4 seconds, hold 7, exhale 8",
		Instructions: "Sit comfortably, breathe in through nose for 4 counts, hold breath for 7 counts, exhale through mouth for 8 counts. Repeat 3-4 times.",
	},
	{
		Type:         "grounding",
		Name:         "5-4-3-2-1 Technique",
		Description:  "Grounding exercise for anxiety",
		Instructions: "Name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, 1 you can taste.",
	},
	{
		Type:         "meditation",
		Name:         "Quick Meditation",
		Description:  "5-minute mindfulness exercise",
		Instructions: "Sit quietly, focus on your breath. When thoughts come, acknowledge them and return focus to breathing.",
	},
}

var educational = []Article{
	{
		Title:       "Understanding Exam Stress",
		Description: "Tips for managing academic pressure",
		Content:     "Academic stress is normal. Break study into small chunks, take regular breaks, and remember that one exam doesn't define your worth.",
	},
	{
		Title:       "Dealing with Family Expectations",
		Description: "Navigating parental pressure",
		Content:     "Communicate openly with family about your feelings. Set boundaries while respecting their concerns. Remember, your mental health matters.",
	},
}

// Load returns a fresh copy of the catalog.
func Load() Catalog {
	return Catalog{
		Crisis:      crisis.Helplines(),
		SelfHelp:    append([]Exercise(nil), selfHelp...),
		Educational: append([]Article(nil), educational...),
	}
}
