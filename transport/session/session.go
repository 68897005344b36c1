// Package session holds what the HTTP views share: the session cookie and
// the game view sent to clients.
package session

import (
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/view"
)

const CookieName = "ttt_session"

// View is the game as a client renders it.
type View struct {
	Session       string                `json:"session"`
	Version       int64                 `json:"version"`
	Game          entity.Snapshot       `json:"game"`
	Text          string                `json:"text"`
	Notifications []entity.Notification `json:"notifications,omitempty"`
}

func NewView(session *entity.Session, notifications []entity.Notification) *View {
	return &View{
		Session:       session.ID,
		Version:       session.Version,
		Game:          session.Game,
		Text:          view.SnapshotText(session.Game),
		Notifications: notifications,
	}
}

// FromRequest returns the session ID carried by the request cookie, if any.
func FromRequest(req *http.Request) string {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// SetCookie binds the client to session id for ttl. A zero ttl makes it a
// browser-session cookie.
func SetCookie(writer http.ResponseWriter, id string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}

	http.SetCookie(writer, cookie)
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
