package apihandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jinzhu/copier"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
)

var log = internal.GetLogger()

// CreateSessionHandler godoc
//
//	@Summary		Start a session
//	@Description	validates the OpenAI API key and starts a session bound to it
//	@Tags			session
//	@Accept			json
//	@Produce		json
//	@Param			session	body		CreateSessionRequest	true	"API key"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Router			/api/v1/sessions [post]
func CreateSessionHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := decodeAndValidate(r, &req); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		s, err := appState.Sessions.Create(req.APIKey)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		log.Debugf("api session %s started", s.ID)

		var resp SessionResponse
		if err := copier.Copy(&resp, s); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		renderJSON(w, http.StatusCreated, resp)
	}
}

// DeleteSessionHandler godoc
//
//	@Summary		End a session
//	@Description	discards the session and everything built for it
//	@Tags			session
//	@Param			sessionId	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	APIError	"Not Found"
//	@Router			/api/v1/sessions/{sessionId} [delete]
func DeleteSessionHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := appState.Sessions.Delete(chi.URLParam(r, "sessionId")); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		log.Debugf("api session %s ended", chi.URLParam(r, "sessionId"))
		w.WriteHeader(http.StatusNoContent)
	}
}
