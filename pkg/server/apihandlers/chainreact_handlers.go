package apihandlers

import (
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
)

// GetChainReactMessagesHandler godoc
//
//	@Summary		Get the ChainReact conversation
//	@Description	starts the conversation on first access; system messages are omitted
//	@Tags			chainreact
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session ID"
//	@Success		200			{object}	ChatResponse
//	@Router			/api/v1/sessions/{sessionId}/chainreact/messages [get]
func GetChainReactMessagesHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromURL(appState, w, r)
		if s == nil {
			return
		}

		history, err := s.ChainReactHistory(r.Context())
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		renderJSON(w, http.StatusOK, ChatResponse{Messages: history})
	}
}

// PostChainReactMessageHandler godoc
//
//	@Summary		Ask ChainReact a question
//	@Tags			chainreact
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string				true	"Session ID"
//	@Param			body		body		ChatMessageRequest	true	"Question"
//	@Success		200			{object}	ChatResponse
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Router			/api/v1/sessions/{sessionId}/chainreact/messages [post]
func PostChainReactMessageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromURL(appState, w, r)
		if s == nil {
			return
		}

		var req ChatMessageRequest
		if err := decodeAndValidate(r, &req); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		reply, err := s.ChainReactTurn(r.Context(), req.Message)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		history, err := s.ChainReactHistory(r.Context())
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		renderJSON(w, http.StatusOK, ChatResponse{Reply: &reply, Messages: history})
	}
}
