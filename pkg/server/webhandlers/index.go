package webhandlers

import (
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/web"
)

type AppCard struct {
	Name        string
	Path        string
	Description string
}

type IndexData struct {
	SessionData
	Apps []AppCard
}

var appCards = []AppCard{
	{
		Name:        "Sentiment Analysis",
		Path:        "/sentiment",
		Description: "Classify text as positive, negative or neutral with a hosted model or a polarity lexicon, one text at a time or a whole CSV.",
	},
	{
		Name:        "News Summarizer",
		Path:        "/summarizer",
		Description: "Distil a news article into a brief, neutral summary.",
	},
	{
		Name:        "ChainReact",
		Path:        "/chainreact",
		Description: "Ask questions about transportation and distribution data, answered from the most relevant shipments.",
	},
	{
		Name:        "StockPrize Ally",
		Path:        "/stockprize",
		Description: "Forecast the next periods of a stock's price from historical data and get the forecast explained.",
	},
}

func newIndexPage(data IndexData) *web.Page {
	return web.NewPage(
		"LLM Demos",
		"Four small applications built on large language models.",
		"/",
		[]string{"templates/pages/index.html", "templates/components/content/*.html"},
		data,
	)
}

func IndexHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		newIndexPage(IndexData{SessionData: sessionData(s), Apps: appCards}).Render(w, r)
	}
}

// StartSessionHandler validates the posted API key, starts a session and
// redirects back to the page the form was posted from.
func StartSessionHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := appState.Sessions.Create(r.PostFormValue("api_key"))
		if err != nil {
			renderWithError(w, r, newIndexPage(IndexData{Apps: appCards}), err)
			return
		}

		setSessionCookie(w, s)
		http.Redirect(w, r, safeRedirect(r.PostFormValue("next")), http.StatusSeeOther)
	}
}

func EndSessionHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s := currentSession(appState, r); s != nil {
			if err := appState.Sessions.Delete(s.ID); err != nil {
				log.Warnf("ending session: %v", err)
			}
		}
		clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
