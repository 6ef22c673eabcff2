package trivia

import (
	"sort"
	"sync"
)

// Rand supplies the question draw. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Question is a single multiple-choice question.
type Question struct {
	Text    string
	Choices [4]string
	Answer  string // "A".."D"
}

// AnswerResult reports the outcome of answering the live question.
type AnswerResult struct {
	Correct      bool
	CorrectLabel string
}

// Score is one leaderboard row.
type Score struct {
	UserID string
	Points int
}

// Engine holds at most one live question per channel and a per-guild
// leaderboard.
type Engine struct {
	mu   sync.Mutex
	rng  Rand
	bank []Question

	// live holds at most one question per channel ID.
	live map[string]Question
	// scores is guild ID -> user ID -> points.
	scores map[string]map[string]int
}

// NewEngine creates an engine over the default question bank.
func NewEngine(rng Rand) *Engine {
	return NewEngineWithBank(rng, defaultBank)
}

// NewEngineWithBank creates an engine over a custom question bank.
func NewEngineWithBank(rng Rand, bank []Question) *Engine {
	return &Engine{
		rng:    rng,
		bank:   bank,
		live:   make(map[string]Question),
		scores: make(map[string]map[string]int),
	}
}

// Ask draws a random question, stores it as the channel's live question
// (replacing any unanswered one), and returns it.
func (e *Engine) Ask(channelID string) Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	q := e.bank[e.rng.Intn(len(e.bank))]
	e.live[channelID] = q
	return q
}

// Answer resolves the channel's live question. The question is consumed no
// matter who answers or whether they are right; the first answer wins. The
// second return value is false when no question is live.
func (e *Engine) Answer(channelID, guildID, userID, label string) (AnswerResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, ok := e.live[channelID]
	if !ok {
		return AnswerResult{}, false
	}
	delete(e.live, channelID)

	res := AnswerResult{CorrectLabel: q.Answer}
	if label == q.Answer {
		res.Correct = true
		guild, ok := e.scores[guildID]
		if !ok {
			guild = make(map[string]int)
			e.scores[guildID] = guild
		}
		guild[userID]++
	}
	return res, true
}

// Scores returns up to the top 10 scorers for a guild, highest first.
func (e *Engine) Scores(guildID string) []Score {
	e.mu.Lock()
	defer e.mu.Unlock()

	guild := e.scores[guildID]
	if len(guild) == 0 {
		return nil
	}

	ranked := make([]Score, 0, len(guild))
	for userID, points := range guild {
		ranked = append(ranked, Score{UserID: userID, Points: points})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	return ranked
}
