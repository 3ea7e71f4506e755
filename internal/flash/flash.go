// Package flash carries one-shot notifications between requests in a signed
// cookie.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	CookieName = "fire_flash"
	maxAge     = 5 * time.Minute
	ctxKey     = "flash.pending"
	audience   = "fire_tracker.flash"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

type claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Store signs and verifies the flash cookie.
type Store struct {
	secret []byte
	secure bool
}

// NewStore derives the cookie key from secret, so a flash cookie never
// verifies under the login token key.
func NewStore(secret string, secure bool) *Store {
	return &Store{secret: deriveKey(secret), secure: secure}
}

func deriveKey(secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("flash"))
	return mac.Sum(nil)
}

// Add queues msg for the next Pop, including later Adds in the same request.
func (s *Store) Add(c *gin.Context, level, text string) {
	pending := append(s.pending(c), Message{Level: level, Text: text})
	c.Set(ctxKey, pending)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(maxAge)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		logrus.WithError(err).Error("flash: could not sign cookie")
		return
	}
	s.setCookie(c, signed, int(maxAge.Seconds()))
}

// Pop returns the queued messages and clears them.
func (s *Store) Pop(c *gin.Context) []Message {
	msgs := s.pending(c)
	if len(msgs) > 0 {
		c.Set(ctxKey, []Message(nil))
		s.setCookie(c, "", -1)
	}
	return msgs
}

func (s *Store) pending(c *gin.Context) []Message {
	if v, ok := c.Get(ctxKey); ok {
		msgs, _ := v.([]Message)
		return msgs
	}
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	var cl claims
	_, err = jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithAudience(audience))
	if err != nil {
		logrus.WithError(err).Debug("flash: discarding invalid cookie")
		s.setCookie(c, "", -1)
		return nil
	}
	c.Set(ctxKey, cl.Messages)
	return cl.Messages
}

func (s *Store) setCookie(c *gin.Context, value string, age int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, age, "/", "", s.secure, true)
}
