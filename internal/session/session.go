package session

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CookieName = "studybud_session"
	issuer     = "studybud"
	audience   = "user"

	// DefaultMaxAge matches the two week lifetime browsers are used to.
	DefaultMaxAge = 14 * 24 * time.Hour
)

var ErrNoSession = errors.New("no session")

// Manager issues and verifies session cookies. Cookies carry a PASETO v4
// public token whose subject is the user id.
type Manager struct {
	MaxAge time.Duration
	Secure bool

	key    paseto.V4AsymmetricSecretKey
	parser paseto.Parser
}

// NewManager builds a Manager from a base64 encoded v4 secret key. An empty
// secret generates a throwaway key, invalidating sessions on restart.
func NewManager(secret string) (m *Manager, err error) {
	m = &Manager{
		MaxAge: DefaultMaxAge,
		parser: paseto.MakeParser([]paseto.Rule{
			paseto.IssuedBy(issuer),
			paseto.ForAudience(audience),
			paseto.NotExpired(),
		}),
	}

	if secret == "" {
		zap.L().Warn("no session secret configured, using random key")
		m.key = paseto.NewV4AsymmetricSecretKey()
		return
	}

	if m.key, err = LoadSecretKey(secret); err != nil {
		m = nil
	}
	return
}

// LoadSecretKey decodes a base64 encoded PASETO v4 secret key.
func LoadSecretKey(secret string) (key paseto.V4AsymmetricSecretKey, err error) {
	var decoded []byte
	if decoded, err = base64.StdEncoding.DecodeString(secret); err != nil {
		return
	}

	return paseto.NewV4AsymmetricSecretKeyFromBytes(decoded)
}

// GenerateSecretKey returns a new base64 encoded secret suitable for NewManager.
func GenerateSecretKey() string {
	return base64.StdEncoding.EncodeToString(paseto.NewV4AsymmetricSecretKey().ExportBytes())
}

// Login attaches a session for userID to the response.
func (m *Manager) Login(w http.ResponseWriter, userID int64) {
	now := time.Now()
	expiresAt := now.Add(m.MaxAge)

	token := paseto.NewToken()
	token.SetIssuer(issuer)
	token.SetAudience(audience)
	token.SetJti(uuid.New().String())
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)
	token.SetSubject(strconv.FormatInt(userID, 10))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token.V4Sign(m.key, nil),
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(m.MaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Secure:   m.Secure,
	})
}

// Logout expires the session cookie.
func (m *Manager) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		Secure:   m.Secure,
	})
}

// UserID returns the user id of the session attached to r.
func (m *Manager) UserID(r *http.Request) (userID int64, err error) {
	var cookie *http.Cookie
	if cookie, err = r.Cookie(CookieName); errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		err = ErrNoSession
		return
	} else if err != nil {
		return
	}

	var token *paseto.Token
	if token, err = m.parser.ParseV4Public(m.key.Public(), cookie.Value, nil); err != nil {
		return
	}

	var subject string
	if subject, err = token.GetSubject(); err != nil {
		return
	}

	return strconv.ParseInt(subject, 10, 64)
}
