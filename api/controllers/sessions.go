package controllers

import (
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/sajad-git/election/logging"
)

const (
	StageInitial = "initial"
	StageConfirm = "confirm"
	StageVoted   = "voted"
)

// VoterSession is the transient per-session state of the voting flow. The
// captured fields are only meaningful while Stage is StageConfirm.
type VoterSession struct {
	Token        string
	Stage        string
	NationalCode string
	FirstName    string
	LastName     string
	Choice       string
}

// Reset returns the session to the initial stage and discards any capture.
func (s *VoterSession) Reset() {
	s.Stage = StageInitial
	s.NationalCode = ""
	s.FirstName = ""
	s.LastName = ""
	s.Choice = ""
}

// SessionRegistry owns every live voter session, keyed by token. Sessions
// are never persisted; restarting the process discards them all.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*VoterSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*VoterSession),
	}
}

// Resolve returns the session for token, or a fresh one (with a newly
// issued token) when the token is empty or unknown.
func (r *SessionRegistry) Resolve(token string) *VoterSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != "" {
		if session, ok := r.sessions[token]; ok {
			return session
		}
	}

	newToken, err := gonanoid.New()
	if err != nil {
		logging.Log.Errorf("SESSION: failed to generate token: %v", err)
		return &VoterSession{Stage: StageInitial}
	}

	session := &VoterSession{Token: newToken, Stage: StageInitial}
	r.sessions[newToken] = session
	return session
}
