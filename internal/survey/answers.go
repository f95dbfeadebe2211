package survey

import (
	"fmt"
	"math"
	"sort"

	"dccd/internal/api"
)

// Answers maps question ids to discrete levels. A missing entry is unanswered.
type Answers map[int]Level

// With returns a copy of a with question id set to level. Unanswered
// (or any invalid level) removes the entry.
func (a Answers) With(id int, level Level) Answers {
	next := make(Answers, len(a)+1)
	for k, v := range a {
		next[k] = v
	}
	if level.Valid() {
		next[id] = level
	} else {
		delete(next, id)
	}
	return next
}

// Get returns the level for a question, or Unanswered.
func (a Answers) Get(id int) Level {
	if l, ok := a[id]; ok && l.Valid() {
		return l
	}
	return Unanswered
}

// AnsweredCount counts answered questions among the given ids.
func (a Answers) AnsweredCount(questions []api.Question) int {
	n := 0
	for _, q := range questions {
		if a.Get(q.ID).Valid() {
			n++
		}
	}
	return n
}

// CompletionPercent is the rounded share of answered questions.
func (a Answers) CompletionPercent(questions []api.Question) int {
	if len(questions) == 0 {
		return 0
	}
	return int(math.Round(float64(a.AnsweredCount(questions)) / float64(len(questions)) * 100))
}

// Complete reports whether every question has an answer.
func (a Answers) Complete(questions []api.Question) bool {
	return len(questions) > 0 && a.AnsweredCount(questions) == len(questions)
}

// Responses returns the wire options in question order.
func (a Answers) Responses(questions []api.Question) ([]api.ResponseOption, error) {
	out := make([]api.ResponseOption, 0, len(questions))
	for _, q := range questions {
		opt, ok := a.Get(q.ID).Option()
		if !ok {
			return nil, fmt.Errorf("question %d is unanswered", q.ID)
		}
		out = append(out, opt)
	}
	return out, nil
}

// IDs returns the answered question ids in ascending order.
func (a Answers) IDs() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
