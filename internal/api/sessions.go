package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"sctr/internal/logger"
	"sctr/internal/metrics"
	"sctr/internal/workflow"
)

const sessionCookie = "sctr_session"

type session struct {
	id       string
	wf       *workflow.Workflow
	lastSeen time.Time
}

// sessionStore keeps one workflow per browser in memory. Idle sessions expire
// after ttl; nothing survives a restart.
type sessionStore struct {
	ttl         time.Duration
	newWorkflow func(id string) *workflow.Workflow
	now         func() time.Time

	mu    sync.Mutex
	items map[string]*session
}

func newSessionStore(ttl time.Duration, newWorkflow func(id string) *workflow.Workflow) *sessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &sessionStore{
		ttl:         ttl,
		newWorkflow: newWorkflow,
		now:         time.Now,
		items:       map[string]*session{},
	}
}

// get returns the caller's session, starting a new one when the cookie is missing
// or expired.
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.items[c.Value]; ok {
			sess.lastSeen = now
			return sess
		}
	}

	id := uuid.NewString()
	sess := &session{id: id, wf: s.newWorkflow(id), lastSeen: now}
	s.items[id] = sess
	metrics.ActiveSessions.Set(float64(len(s.items)))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Debug().Str("session", id).Msg("session started")
	return sess
}

func (s *sessionStore) sweepLocked(now time.Time) {
	removed := 0
	for id, sess := range s.items {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.items, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.ActiveSessions.Set(float64(len(s.items)))
		logger.Debug().Int("expired", removed).Msg("sessions expired")
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
