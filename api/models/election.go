package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// ElectionStatusResponse describes the voting surface for one session.
// Candidates is empty while the election is inactive.
type ElectionStatusResponse struct {
	Title      string   `json:"title"`
	Active     bool     `json:"active"`
	Candidates []string `json:"candidates,omitempty"`
	Stage      string   `json:"stage"`
	Notice     string   `json:"notice,omitempty"`
}

type SubmitVoteRequest struct {
	NationalCode string `json:"nationalCode"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Choice       string `json:"choice"`
}

// VoteStageResponse is returned by every flow action: the session's stage
// after the action, plus any notice or collected validation errors.
type VoteStageResponse struct {
	Stage  string   `json:"stage"`
	Notice string   `json:"notice,omitempty"`
	Choice string   `json:"choice,omitempty"`
	Errors []string `json:"errors,omitempty"`
}
