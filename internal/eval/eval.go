// Package eval reduces a finished session into a skill report: deterministic
// text metrics plus a model-written narrative evaluation.
package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/parlolabs/parlo/internal/convo"
	"github.com/parlolabs/parlo/internal/groq"
)

// ErrEmptyTranscript means the session holds no user speech to evaluate.
// Recoverable: the caller surfaces it as a "nothing to evaluate" result.
var ErrEmptyTranscript = errors.New("no speech detected to evaluate")

// Report is the end-of-session scorecard.
type Report struct {
	Level              convo.Level `json:"level"`
	WordCount          int         `json:"word_count"`
	AvgWordsPerMessage float64     `json:"avg_words_per_message"`
	VocabularyRichness float64     `json:"vocabulary_richness"`
	CommonMistakes     []string    `json:"common_mistakes"`
	DetailedEvaluation string      `json:"detailed_evaluation"`
}

// Responder produces the narrative half of the report. Satisfied by
// *groq.Client; the retry/fallback contract lives behind it.
type Responder interface {
	Complete(ctx context.Context, system string, messages []groq.Message) string
}

type Evaluator struct {
	llm    Responder
	logger *slog.Logger
}

func New(llm Responder, logger *slog.Logger) *Evaluator {
	return &Evaluator{llm: llm, logger: logger}
}

// Evaluate reduces the profile and turn sequence into a Report. The metrics
// are computed over all user turns joined with single spaces, in turn order.
func (e *Evaluator) Evaluate(ctx context.Context, profile *convo.Profile, turns []convo.Turn) (*Report, error) {
	var userTexts []string
	for _, t := range turns {
		if t.Role == convo.RoleUser {
			userTexts = append(userTexts, t.Text)
		}
	}
	if len(userTexts) == 0 {
		return nil, ErrEmptyTranscript
	}

	joined := strings.Join(userTexts, " ")
	words := tokenize(joined)
	wordCount := len(words)

	avg := round1(float64(wordCount) / float64(len(userTexts)))

	richness := 0.0
	if wordCount > 0 {
		richness = round1(float64(distinct(words)) / float64(wordCount) * 100)
	}

	e.logger.Info("evaluating session",
		"level", profile.Level,
		"user_turns", len(userTexts),
		"word_count", wordCount,
	)

	narrative := e.llm.Complete(ctx, narrativePrompt(profile.Level, userTexts), nil)

	return &Report{
		Level:              profile.Level,
		WordCount:          wordCount,
		AvgWordsPerMessage: avg,
		VocabularyRichness: richness,
		CommonMistakes:     commonMistakes(joined),
		DetailedEvaluation: narrative,
	}, nil
}

var wordRe = regexp.MustCompile(`\w+`)

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

func distinct(words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return len(seen)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// mistakePattern is one heuristic ESL error signature. The set is fixed and
// matched case-insensitively against the whole user transcript.
type mistakePattern struct {
	re   *regexp.Regexp
	desc string
}

var mistakePatterns = []mistakePattern{
	{regexp.MustCompile(`(?i)\bi am (agree|disagree)`), "Using 'I am agree' instead of 'I agree'"},
	{regexp.MustCompile(`(?i)\bthe\s+([a-z]+ing)\b`), "Potentially incorrect use of 'the' with gerund"},
	{regexp.MustCompile(`(?i)\b(make|makes|made)\s+fun\b`), "Using 'make fun' instead of 'have fun'"},
	{regexp.MustCompile(`(?i)\b(is|are|was|were)\s+consist`), "Using 'is consist of' instead of 'consists of'"},
	{regexp.MustCompile(`(?i)\bdiscuss\s+about\b`), "Using 'discuss about' instead of just 'discuss'"},
	{regexp.MustCompile(`(?i)\badvice\s+(to|for)\s+\w+\b`), "Using 'advice to' instead of 'advise'"},
	{regexp.MustCompile(`(?i)\b(look|looks|looked)\s+forward\s+to\s+([a-z]+ing)`), "Correct use of 'look forward to' + gerund"},
	{regexp.MustCompile(`(?i)\b(look|looks|looked)\s+forward\s+to\s+(\w+[^ing\s])\b`), "Incorrect use of 'look forward to' without gerund"},
}

const maxReportedMistakes = 3

// commonMistakes collects the descriptions of matched patterns, deduped and
// capped. Set semantics: callers must not rely on ordering.
func commonMistakes(text string) []string {
	var found []string
	seen := make(map[string]struct{})
	for _, p := range mistakePatterns {
		if !p.re.MatchString(text) {
			continue
		}
		if _, dup := seen[p.desc]; dup {
			continue
		}
		seen[p.desc] = struct{}{}
		found = append(found, p.desc)
		if len(found) == maxReportedMistakes {
			break
		}
	}
	return found
}

func narrativePrompt(level convo.Level, userTexts []string) string {
	var b strings.Builder
	for _, t := range userTexts {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	return fmt.Sprintf(evaluationPrompt, level, b.String(), level)
}
