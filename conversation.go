package oracle

import (
	"sync"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ports"
)

// conversationStore keeps the per-session transcript handed to the
// responder. Turns are committed only after a consultation completes, so a
// failed call never pollutes the next one's context.
type conversationStore struct {
	mu   sync.Mutex
	byID map[string][]ports.Message
}

func newConversationStore() *conversationStore {
	return &conversationStore{
		byID: make(map[string][]ports.Message),
	}
}

// withUser returns a copy of the session transcript with the new user turn
// appended. The stored transcript is untouched.
func (s *conversationStore) withUser(sessionID, message string) []ports.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.byID[sessionID]
	out := make([]ports.Message, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, ports.Message{Role: ports.RoleUser, Content: message})
	return out
}

// commit appends a completed user/assistant exchange to the transcript.
func (s *conversationStore) commit(sessionID, message, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sessionID] = append(s.byID[sessionID],
		ports.Message{Role: ports.RoleUser, Content: message},
		ports.Message{Role: ports.RoleAssistant, Content: reply},
	)
}

// forget drops the session transcript.
func (s *conversationStore) forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, sessionID)
}

// transcript returns a copy of the committed transcript for the session.
func (s *conversationStore) transcript(sessionID string) []ports.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.Message, len(s.byID[sessionID]))
	copy(out, s.byID[sessionID])
	return out
}
