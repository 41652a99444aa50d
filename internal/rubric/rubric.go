// Package rubric scores argument text on five 0-10 coaching metrics.
// The scoring is a pure, deterministic text heuristic with no I/O.
package rubric

import (
	"math"
	"regexp"
	"strings"
)

// Score is one rubric evaluation. All metrics are clamped to their
// documented ranges and rounded to one decimal place.
type Score struct {
	Clarity        float64 `json:"clarity"`
	Structure      float64 `json:"structure"`
	Authority      float64 `json:"authority"`
	Responsiveness float64 `json:"responsiveness"`
	Persuasiveness float64 `json:"persuasiveness"`
	Notes          string  `json:"notes"`
}

// Keyword multipliers. The legacy handlers disagreed on these; 2x for
// both matches the canonical score endpoint and is the documented
// contract here.
const (
	responsivenessWeight = 2
	persuasivenessWeight = 2
)

var (
	structureRe   = regexp.MustCompile(`(?i)\b(first|second|third|next|finally|step)\b`)
	persuasionRe  = regexp.MustCompile(`(?i)\b(therefore|thus|clearly|must|compelling|should|because|hence)\b`)
	caseCiteRe    = regexp.MustCompile(`\w+\s+v\.\s+\w+`)
	capitalizedRe = regexp.MustCompile(`^\W*[A-Z][a-z]`)
	sentenceSplit = regexp.MustCompile(`[.!?]`)

	responsivenessPhrases = []string{"your honor", "you asked", "in response", "responding to"}
)

// Evaluate scores a transcript excerpt. Empty or whitespace-only input
// yields all metrics at the 5.0 midpoint rather than an error.
func Evaluate(text string) Score {
	if strings.TrimSpace(text) == "" {
		return Score{
			Clarity:        5,
			Structure:      5,
			Authority:      5,
			Responsiveness: 5,
			Persuasiveness: 5,
			Notes:          "No content to score.",
		}
	}

	sentences := splitSentences(text)
	words := strings.Fields(text)

	avgWords := float64(len(words))
	if len(sentences) > 0 {
		avgWords = float64(len(words)) / float64(len(sentences))
	}
	clarity := clamp(10-avgWords/5, 1, 10)

	structure := 0.0
	if len(sentences) > 0 {
		count := len(structureRe.FindAllString(text, -1))
		structure = clamp(float64(count)/float64(len(sentences))*10, 0, 10)
	}

	capitalized := 0
	for _, w := range words {
		if capitalizedRe.MatchString(w) {
			capitalized++
		}
	}
	cites := len(caseCiteRe.FindAllString(text, -1))
	authority := clamp(float64(cites)*2+0.1*float64(capitalized), 0, 10)

	lower := strings.ToLower(text)
	respCount := 0
	for _, phrase := range responsivenessPhrases {
		respCount += strings.Count(lower, phrase)
	}
	responsiveness := clamp(float64(respCount*responsivenessWeight), 0, 10)

	persCount := len(persuasionRe.FindAllString(text, -1))
	persuasiveness := clamp(float64(persCount*persuasivenessWeight), 0, 10)

	s := Score{
		Clarity:        round1(clarity),
		Structure:      round1(structure),
		Authority:      round1(authority),
		Responsiveness: round1(responsiveness),
		Persuasiveness: round1(persuasiveness),
	}
	s.Notes = "Strength: " + s.strongest() + ". Weakness: " + s.weakest() + "."
	return s
}

func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

var metricNames = []string{"clarity", "structure", "authority", "responsiveness", "persuasiveness"}

func (s Score) metrics() []float64 {
	return []float64{s.Clarity, s.Structure, s.Authority, s.Responsiveness, s.Persuasiveness}
}

// strongest returns the first highest-scoring metric in declaration
// order, so ties resolve deterministically.
func (s Score) strongest() string {
	values := s.metrics()
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return metricNames[best]
}

func (s Score) weakest() string {
	values := s.metrics()
	worst := 0
	for i, v := range values {
		if v < values[worst] {
			worst = i
		}
	}
	return metricNames[worst]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
