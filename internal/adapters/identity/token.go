package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken        = errors.New("identity: no id token")
	ErrMalformedToken = errors.New("identity: malformed id token")
	ErrTokenExpired   = errors.New("identity: id token expired")
	ErrNoSubject      = errors.New("identity: id token has no user id")
)

// Claims is the subset of the backend ID token the companion reads.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Session is the signed-in user derived from an ID token.
type Session struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Reader extracts the current user from an ID token. The signature is not
// checked here: the backend verifies every request it receives.
type Reader struct {
	parser *jwt.Parser
	now    func() time.Time
}

func NewReader() *Reader {
	return &Reader{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

func (r *Reader) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Reader) Read(raw string) (*Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := r.parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
		if !r.now().Before(expires) {
			return nil, ErrTokenExpired
		}
	}

	uid := claims.UserID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return nil, ErrNoSubject
	}

	return &Session{
		UserID:    uid,
		Email:     claims.Email,
		Token:     raw,
		ExpiresAt: expires,
	}, nil
}

// BearerToken returns the token part of an Authorization header value.
func BearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}
