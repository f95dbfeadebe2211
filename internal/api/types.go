// Package api is the HTTP client for the diagnostic backend.
//
// The backend owns question content and recommendation scoring; this
// package only moves JSON between it and the client.
package api

// ResponseOption is the wire value of one survey answer.
type ResponseOption string

const (
	StronglyDisagree ResponseOption = "strongly_disagree"
	Disagree         ResponseOption = "disagree"
	Agree            ResponseOption = "agree"
	StronglyAgree    ResponseOption = "strongly_agree"
)

// Question is one survey statement.
type Question struct {
	ID        int    `json:"id"`
	Statement string `json:"statement"`
}

// QuestionsResponse is the body of GET /api/v1/questions.
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	Responses []ResponseOption `json:"responses"`
}

// Recommendation is one ranked activity returned by the backend.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phase       string `json:"phase"`
}

// RecommendationResponse is the body returned by POST /api/v1/recommendations.
type RecommendationResponse struct {
	Recommendations   []Recommendation `json:"recommendations"`
	TotalQuestions    int              `json:"total_questions"`
	CompletionPercent int              `json:"completion_percent"`
	ScoringNote       string           `json:"scoring_note"`
	PrerequisiteNote  *string          `json:"prerequisite_note"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
