package webhandlers

import (
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/web"
)

type SummarizerData struct {
	SessionData
	Article string
	Summary string
}

func newSummarizerPage(s *session.Session) (*web.Page, *SummarizerData) {
	data := &SummarizerData{SessionData: sessionData(s)}
	page := web.NewPage(
		"News Summarizer",
		"Paste a news article to get a brief, neutral summary.",
		"/summarizer",
		[]string{
			"templates/pages/summarizer.html",
			"templates/components/content/*.html",
		},
		data,
	)
	return page, data
}

func SummarizerPageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := newSummarizerPage(currentSession(appState, r))
		page.Render(w, r)
	}
}

func SummarizeHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newSummarizerPage(s)
		if s == nil {
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		data.Article = r.PostFormValue("article")

		err := s.Exclusive(func() error {
			var err error
			data.Summary, err = appState.Summarizer(s).Summarize(r.Context(), data.Article)
			return err
		})
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}

		page.Render(w, r)
	}
}
