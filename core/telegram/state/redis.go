package state

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m3rciful/storebot/core/logger"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const redisKeyPrefix = "fsm:"

type redisSession struct {
	State    State                  `json:"state"`
	TempData map[string]interface{} `json:"temp,omitempty"`
}

type redisManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisManager constructs a Manager backed by Redis, allowing sessions to be
// shared across bot instances. Sessions expire after ttl of inactivity; a
// non-positive ttl keeps them until cleared.
func NewRedisManager(client *redis.Client, ttl time.Duration) Manager {
	return &redisManager{client: client, ttl: ttl}
}

func redisKey(userID int64) string {
	return redisKeyPrefix + strconv.FormatInt(userID, 10)
}

func (m *redisManager) load(userID int64) *redisSession {
	raw, err := m.client.Get(context.Background(), redisKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.SVCUsers.Warn("session load failed",
				slog.String("event", "fsm.redis.load"),
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return nil
	}
	var sess redisSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil
	}
	return &sess
}

func (m *redisManager) store(userID int64, sess *redisSession) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	ttl := m.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := m.client.Set(context.Background(), redisKey(userID), raw, ttl).Err(); err != nil {
		logger.SVCUsers.Warn("session store failed",
			slog.String("event", "fsm.redis.store"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

func (m *redisManager) mutate(userID int64, fn func(*redisSession)) {
	sess := m.load(userID)
	if sess == nil {
		sess = &redisSession{State: StateIdle, TempData: make(map[string]interface{})}
	}
	if sess.TempData == nil {
		sess.TempData = make(map[string]interface{})
	}
	fn(sess)
	m.store(userID, sess)
}

// Get returns a snapshot of the user's session, or an idle one when absent.
func (m *redisManager) Get(userID int64) *Session {
	sess := m.load(userID)
	if sess == nil {
		return &Session{State: StateIdle, TempData: make(map[string]interface{})}
	}
	temp := sess.TempData
	if temp == nil {
		temp = make(map[string]interface{})
	}
	return &Session{State: sess.State, TempData: temp, Touched: time.Now()}
}

// Set updates the state for a user.
func (m *redisManager) Set(userID int64, st State) { m.SetState(userID, st) }

// SetTemp stores a temporary key/value pair for the given user session.
func (m *redisManager) SetTemp(userID int64, key string, value interface{}) {
	m.mutate(userID, func(s *redisSession) { s.TempData[key] = value })
}

// GetTemp retrieves a temporary value by key for the given user session.
func (m *redisManager) GetTemp(userID int64, key string) (interface{}, bool) {
	sess := m.load(userID)
	if sess == nil || sess.TempData == nil {
		return nil, false
	}
	val, ok := sess.TempData[key]
	return val, ok
}

// GetTempInt64 retrieves a temporary value by key and coerces it to int64.
// JSON round-tripping turns integers into float64, so both kinds are accepted.
func (m *redisManager) GetTempInt64(userID int64, key string) (int64, bool) {
	val, found := m.GetTemp(userID, key)
	if !found {
		return 0, false
	}
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}

// GetTempString retrieves a temporary value by key and asserts it as string.
func (m *redisManager) GetTempString(userID int64, key string) (string, bool) {
	val, found := m.GetTemp(userID, key)
	if !found {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// ClearTemp removes a temporary key/value pair for the given user session.
func (m *redisManager) ClearTemp(userID int64, key string) {
	m.mutate(userID, func(s *redisSession) { delete(s.TempData, key) })
}

// Clear removes the entire session for a user.
func (m *redisManager) Clear(userID int64) {
	_ = m.client.Del(context.Background(), redisKey(userID)).Err()
}

// SetState sets the FSM state for the given user.
func (m *redisManager) SetState(userID int64, st State) {
	m.mutate(userID, func(s *redisSession) { s.State = st })
}

// GetState returns the current FSM state of a user, or StateIdle if none exists.
func (m *redisManager) GetState(userID int64) State {
	sess := m.load(userID)
	if sess == nil || sess.State == "" {
		return StateIdle
	}
	return sess.State
}

// ClearState resets the FSM state to idle for a user without removing session data.
func (m *redisManager) ClearState(userID int64) {
	m.mutate(userID, func(s *redisSession) { s.State = StateIdle })
}

// HasState checks if a user has an active state other than idle.
func (m *redisManager) HasState(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// InProgress reports whether the user currently has an active FSM state.
func (m *redisManager) InProgress(userID int64) bool {
	return m.HasState(userID)
}

// ManagerHandler executes the handler function registered for the user's current state, if any.
func (m *redisManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	current := m.GetState(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := fsmHandlers[current]; ok {
		return handler(c)
	}
	return nil
}
