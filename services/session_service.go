package services

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/i18n"
)

// Session is the full per-browser state: optional authenticated identity
// plus the selected display language. It is stored as JSON in redis under
// the cookie's session id.
type Session struct {
	UserID   *uint  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Language string `json:"language"`
}

func (s Session) Authenticated() bool { return s.UserID != nil }

func (s Session) IsAdmin() bool { return s.Authenticated() && s.Role == "admin" }

type SessionService struct {
	cache      *CacheService
	cookieName string
	ttl        time.Duration
}

func NewSessionService(cache *CacheService, cfg config.SessionConfig) *SessionService {
	return &SessionService{
		cache:      cache,
		cookieName: cfg.CookieName,
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
	}
}

func (s *SessionService) CookieName() string { return s.cookieName }

func sessionKey(sid string) string { return "session:" + sid }

// Load returns the session id from the request cookie and the stored
// session. A missing or expired session yields an empty id and the
// anonymous default (language "en").
func (s *SessionService) Load(c *gin.Context) (string, Session) {
	sess := Session{Language: i18n.DefaultLanguage}

	sid, err := c.Cookie(s.cookieName)
	if err != nil || sid == "" {
		return "", sess
	}

	var stored Session
	if err := s.cache.Get(c.Request.Context(), sessionKey(sid), &stored); err != nil {
		return "", sess
	}
	stored.Language = i18n.Normalize(stored.Language)
	return sid, stored
}

// Save persists the session and sets the cookie, allocating a new session
// id when the request had none.
func (s *SessionService) Save(c *gin.Context, sid string, sess Session) (string, error) {
	if sid == "" {
		sid = uuid.NewString()
	}
	if err := s.cache.Set(c.Request.Context(), sessionKey(sid), sess, s.ttl); err != nil {
		return "", err
	}
	c.SetCookie(s.cookieName, sid, int(s.ttl.Seconds()), "/", "", false, true)
	return sid, nil
}

// Destroy drops the stored session and expires the cookie.
func (s *SessionService) Destroy(c *gin.Context, sid string) {
	if sid != "" {
		_ = s.cache.Delete(context.WithoutCancel(c.Request.Context()), sessionKey(sid))
	}
	c.SetCookie(s.cookieName, "", -1, "/", "", false, true)
}
