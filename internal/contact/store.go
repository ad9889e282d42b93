package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSessionNotFound возвращается, когда у сессии нет формы.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore хранит формы сессий в памяти.
//
// Все обращения к Form идут под одним мьютексом, поэтому сама Form
// может оставаться непотокобезопасной. На диск ничего не пишется.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*session
	ttl         time.Duration
	maxSessions int
	lastPrune   time.Time
	now         func() time.Time
	log         *zap.Logger
}

type session struct {
	form     *Form
	lastSeen time.Time
}

// NewSessionStore создаёт хранилище.
// ttl <= 0 отключает вытеснение по времени, maxSessions <= 0 — по количеству.
func NewSessionStore(ttl time.Duration, maxSessions int, log *zap.Logger) *SessionStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionStore{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
		log:         log,
	}
}

// Do выполняет fn над формой сессии id, создавая форму при первом обращении.
// Сессия, простоявшая дольше ttl, начинается заново с пустой формы.
func (s *SessionStore) Do(ctx context.Context, id string, fn func(*Form)) error {
	// Если запрос уже отменён, состояние не трогаем.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	sess, ok := s.sessions[id]
	if ok && s.expired(sess, now) {
		// полный проход pruneLocked мог ещё не дойти до этой сессии
		delete(s.sessions, id)
		s.log.Debug("session expired", zap.String("session", id))
		ok = false
	}
	if !ok {
		s.evictOldestLocked()
		sess = &session{form: NewForm()}
		s.sessions[id] = sess
	}
	sess.lastSeen = now

	fn(sess.form)
	return nil
}

// Delete удаляет сессию вместе с формой и снимком.
// Возвращает false, если её не было или она уже истекла.
func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, nil
	}
	delete(s.sessions, id)
	return !s.expired(sess, s.now()), nil
}

// Len возвращает число сессий в памяти.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// pruneLocked удаляет сессии, простаивающие дольше ttl.
// Полный проход делается не чаще раза в ttl/2.
func (s *SessionStore) pruneLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastPrune) < s.ttl/2 {
		return
	}
	s.lastPrune = now

	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.log.Debug("session expired", zap.String("session", id))
		}
	}
}

func (s *SessionStore) evictOldestLocked() {
	if s.maxSessions <= 0 || len(s.sessions) < s.maxSessions {
		return
	}

	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldestID)
	s.log.Debug("session evicted", zap.String("session", oldestID), zap.Int("limit", s.maxSessions))
}
