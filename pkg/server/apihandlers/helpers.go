package apihandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
	"github.com/aifirst/llmdemos/pkg/session"
)

var validate = validator.New()

// sessionFromURL looks up the session named in the path. If it does not
// exist, an error is rendered and nil is returned.
func sessionFromURL(appState *app.AppState, w http.ResponseWriter, r *http.Request) *session.Session {
	s, err := appState.Sessions.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		handlertools.RenderError(w, err, http.StatusNotFound)
		return nil
	}
	return s
}

// decodeAndValidate decodes a JSON body into req and validates its tags.
func decodeAndValidate(r *http.Request, req any) error {
	if err := handlertools.DecodeJSON(r, req); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return models.NewValidationError("invalid request", err)
	}
	return nil
}

func maxUploadBytes(appState *app.AppState) int64 {
	return appState.Config.Server.MaxUploadMB << 20
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	handlertools.RenderJSON(w, data, status)
}
