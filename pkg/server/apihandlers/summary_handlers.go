package apihandlers

import (
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
)

// SummarizeHandler godoc
//
//	@Summary		Summarize a news article
//	@Tags			summarizer
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string			true	"Session ID"
//	@Param			body		body		SummaryRequest	true	"Article"
//	@Success		200			{object}	SummaryResponse
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Router			/api/v1/sessions/{sessionId}/summaries [post]
func SummarizeHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromURL(appState, w, r)
		if s == nil {
			return
		}

		var req SummaryRequest
		if err := decodeAndValidate(r, &req); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		var summary string
		err := s.Exclusive(func() error {
			var err error
			summary, err = appState.Summarizer(s).Summarize(r.Context(), req.Article)
			return err
		})
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		renderJSON(w, http.StatusOK, SummaryResponse{Summary: summary})
	}
}
