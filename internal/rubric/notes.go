package rubric

import "strings"

// Turn is one entry of the browser-held transcript.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// How many trailing turns feed the coaching notes.
const notesWindow = 12

var adviceByMetric = map[string]string{
	"clarity":        "Simplify dense sentences and define terms before relying on them.",
	"structure":      "Tighten structure with explicit signposting: first, second, finally.",
	"authority":      "Cite precedent or statutory hooks early to anchor each premise.",
	"responsiveness": "Address the bench directly and answer the question that was asked.",
	"persuasiveness": "Link evidence to each premise with stronger connective reasoning.",
}

// CoachingNotes turns the user's side of a transcript into a short
// deterministic coaching paragraph built from the rubric result.
func CoachingNotes(turns []Turn) string {
	if len(turns) > notesWindow {
		turns = turns[len(turns)-notesWindow:]
	}
	var parts []string
	for _, t := range turns {
		if t.Role == "user" && strings.TrimSpace(t.Text) != "" {
			parts = append(parts, t.Text)
		}
	}
	if len(parts) == 0 {
		return "No argument turns to review yet. Make an argument and ask again."
	}
	score := Evaluate(strings.Join(parts, " "))
	opening := "Overall, your strongest area this round was " + score.strongest() + "."
	advice := adviceByMetric[score.weakest()]
	closing := "Next round: lead with the relief sought and pre-empt likely bench questions."
	return opening + " " + advice + " " + closing
}
