package webhandlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/web"
)

var log = internal.GetLogger()

const SessionCookie = "llmdemos_session"

var ErrNoSession = errors.New("please enter your OpenAI API key to use this app")

// SessionData is embedded in every page's data.
type SessionData struct {
	HasSession bool
	SessionID  string
	StartedAt  time.Time
}

func sessionData(s *session.Session) SessionData {
	if s == nil {
		return SessionData{}
	}
	return SessionData{HasSession: true, SessionID: s.ID, StartedAt: s.CreatedAt}
}

// currentSession returns the session named by the cookie, or nil.
func currentSession(appState *app.AppState, r *http.Request) *session.Session {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	s, err := appState.Sessions.Get(c.Value)
	if err != nil {
		return nil
	}
	return s
}

func setSessionCookie(w http.ResponseWriter, s *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// renderWithError shows err on the page. Bad input is shown as a warning,
// anything else as an error.
func renderWithError(w http.ResponseWriter, r *http.Request, page *web.Page, err error) {
	status := handlertools.StatusForError(err, http.StatusInternalServerError)
	if errors.Is(err, ErrNoSession) {
		status = http.StatusUnauthorized
	}

	switch {
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, ErrNoSession):
		page.Warning = err.Error()
	default:
		page.Error = err.Error()
	}

	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", page.Path, err)
	}
	page.RenderStatus(w, r, status)
}

// safeRedirect only allows local paths. Backslashes are rejected outright
// since browsers treat them as slashes.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	return next
}

func maxUploadBytes(appState *app.AppState) int64 {
	return appState.Config.Server.MaxUploadMB << 20
}
