package app

import (
	"context"

	"dccd/internal/api"
	"dccd/internal/route"
)

// Page is the screen currently shown.
type Page int

const (
	PageWelcome Page = iota
	PageSurvey
	PageResults
)

// String returns the display name for each page
func (p Page) String() string {
	names := []string{"welcome", "survey", "results"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "unknown"
}

// Backend is the subset of the diagnostic API the client uses.
type Backend interface {
	Questions(ctx context.Context) ([]api.Question, error)
	Recommend(ctx context.Context, responses []api.ResponseOption) (*api.RecommendationResponse, []byte, error)
	Health(ctx context.Context) error
}

var _ Backend = (*api.Client)(nil)

type (
	// startupMsg carries the parallel question load and health ping.
	startupMsg struct {
		questions []api.Question
		err       error
		healthErr error
	}

	// questionsMsg is the result of a retried question load.
	questionsMsg struct {
		questions []api.Question
		err       error
	}

	// recommendationMsg is the result of submitting the survey.
	recommendationMsg struct {
		resp *api.RecommendationResponse
		raw  []byte
		err  error
	}

	// stageMsg is a highlight transition from the scheduler.
	stageMsg route.StageEvent
)
