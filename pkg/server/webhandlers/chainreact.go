package webhandlers

import (
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/web"
)

type ChainReactData struct {
	SessionData
	Messages []models.Message
	Question string
}

func newChainReactPage(s *session.Session) (*web.Page, *ChainReactData) {
	data := &ChainReactData{SessionData: sessionData(s)}
	page := web.NewPage(
		"ChainReact",
		"Ask me anything about Supply Chain and Logistics!",
		"/chainreact",
		[]string{
			"templates/pages/chainreact.html",
			"templates/components/content/*.html",
		},
		data,
	)
	return page, data
}

func ChainReactPageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newChainReactPage(s)
		if s == nil {
			page.Render(w, r)
			return
		}

		history, err := s.ChainReactHistory(r.Context())
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}
		data.Messages = history

		page.Render(w, r)
	}
}

// ChainReactMessageHandler runs one conversation turn. On failure the
// question is kept in the input so it can be resent.
func ChainReactMessageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newChainReactPage(s)
		if s == nil {
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		question := r.PostFormValue("message")
		_, turnErr := s.ChainReactTurn(r.Context(), question)

		history, err := s.ChainReactHistory(r.Context())
		if err == nil {
			data.Messages = history
		}
		if turnErr != nil {
			data.Question = question
			renderWithError(w, r, page, turnErr)
			return
		}
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}

		page.Render(w, r)
	}
}
