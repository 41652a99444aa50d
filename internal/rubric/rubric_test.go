package rubric

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateCourtArgument(t *testing.T) {
	text := "First, the statute is clear. Second, precedent in Smith v. Jones supports our reading. Therefore, the motion should be granted."
	s := Evaluate(text)

	require.GreaterOrEqual(t, s.Clarity, 7.0, "short sentences should score high clarity")
	require.GreaterOrEqual(t, s.Structure, 5.0, "signposted argument should score structure")
	require.Greater(t, s.Authority, 0.0, "case citation should register")
	require.Greater(t, s.Persuasiveness, 0.0, "therefore/should should register")
	require.Equal(t, 0.0, s.Responsiveness)
	require.Equal(t, "Strength: clarity. Weakness: responsiveness.", s.Notes)
}

func TestEvaluateEmptyInputReturnsMidrange(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		s := Evaluate(input)
		require.Equal(t, 5.0, s.Clarity)
		require.Equal(t, 5.0, s.Structure)
		require.Equal(t, 5.0, s.Authority)
		require.Equal(t, 5.0, s.Responsiveness)
		require.Equal(t, 5.0, s.Persuasiveness)
		require.Equal(t, "No content to score.", s.Notes)
	}
}

func TestStructureSignposting(t *testing.T) {
	text := "First, we brief the issue. Second, we argue the merits. Finally, we request relief."
	s := Evaluate(text)
	require.GreaterOrEqual(t, s.Structure, 7.0)
}

func TestStructureCountsWholeWordsOnly(t *testing.T) {
	// "firstly" and "stepping" must not count as signposts.
	s := Evaluate("Firstly we consider stepping around the issue entirely.")
	require.Equal(t, 0.0, s.Structure)
}

func TestClarityMonotoneInSentenceLength(t *testing.T) {
	sentence := func(words int) string {
		return strings.TrimSpace(strings.Repeat("word ", words)) + "."
	}
	prev := 11.0
	for _, n := range []int{5, 15, 30, 60, 100} {
		s := Evaluate(sentence(n))
		require.LessOrEqual(t, s.Clarity, prev, "clarity must not increase with sentence length (n=%d)", n)
		prev = s.Clarity
	}
}

func TestResponsivenessPhrases(t *testing.T) {
	s := Evaluate("Your Honor, in response to the question, the record is clear.")
	// Two phrases at 2x each.
	require.Equal(t, 4.0, s.Responsiveness)
}

func TestScoresClampedAndRounded(t *testing.T) {
	// Pile up persuasion keywords well past the cap.
	text := strings.Repeat("Therefore it must follow because clearly it should. ", 20)
	s := Evaluate(text)
	for _, v := range []float64{s.Clarity, s.Structure, s.Authority, s.Responsiveness, s.Persuasiveness} {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 10.0)
		require.InDelta(t, math.Round(v*10)/10, v, 1e-9, "metric %v not rounded to one decimal", v)
	}
	require.Equal(t, 10.0, s.Persuasiveness)
}

func TestCoachingNotesEmptyTranscript(t *testing.T) {
	require.Equal(t, "No argument turns to review yet. Make an argument and ask again.", CoachingNotes(nil))
	require.Equal(t, "No argument turns to review yet. Make an argument and ask again.",
		CoachingNotes([]Turn{{Role: "assistant", Text: "welcome"}}))
}

func TestCoachingNotesUsesUserTurns(t *testing.T) {
	turns := []Turn{
		{Role: "user", Text: "First, the statute controls. Second, Smith v. Jones settles it."},
		{Role: "assistant", Text: "Noted."},
	}
	notes := CoachingNotes(turns)
	require.Contains(t, notes, "your strongest area this round was")
	require.Contains(t, notes, "Next round:")
}

func TestCoachingNotesWindowsTranscript(t *testing.T) {
	turns := make([]Turn, 0, 30)
	for i := 0; i < 30; i++ {
		turns = append(turns, Turn{Role: "user", Text: fmt.Sprintf("Point %d.", i)})
	}
	require.NotEmpty(t, CoachingNotes(turns))
}
