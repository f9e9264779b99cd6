package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const sessionCookieName = "sid"

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		HttpOnly: true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// SessionTracker receives a notification when a new visitor session is
// established.
type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

// HandleSessionCookie reads or establishes the visitor session id. A
// freshly created session is reported to trk when one is provided.
func HandleSessionCookie(trk SessionTracker, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err == nil && c.Value != "" {
		return c.Value
	}
	sessionId := uuid.NewString()
	setSessionCookie(w, r, sessionId)
	if trk != nil {
		trk.TrackSession(sessionId, r)
	}
	return sessionId
}
