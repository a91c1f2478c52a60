package webhandlers

import (
	"bytes"
	"net/http"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/sentiment"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/web"
)

const sentimentPath = "/sentiment"

type MethodOption struct {
	Value models.SentimentMethod
	Label string
}

var methodOptions = []MethodOption{
	{Value: models.MethodHuggingFace, Label: "HuggingFace"},
	{Value: models.MethodPolarity, Label: "Polarity lexicon"},
}

type SentimentData struct {
	SessionData
	Methods []MethodOption
	Method  models.SentimentMethod
	Text    string
	Result  *models.SentimentResult
	Results *web.Table
}

func newSentimentPage(s *session.Session, r *http.Request) (*web.Page, *SentimentData) {
	data := &SentimentData{
		SessionData: sessionData(s),
		Methods:     methodOptions,
		Method:      models.MethodHuggingFace,
	}

	if s != nil {
		if results := s.SentimentResults(); len(results) > 0 {
			table := web.NewTable("sentiment-results", []web.Column{
				{Name: "Text"},
				{Name: "Sentiment"},
				{Name: "Score/Polarity"},
			})
			table.ParseQueryParams(r)
			web.Paginate(table, results)
			data.Results = table
		}
	}

	page := web.NewPage(
		"Sentiment Analysis",
		"Classify the sentiment of a text or of every row of a CSV file.",
		sentimentPath,
		[]string{
			"templates/pages/sentiment.html",
			"templates/components/content/*.html",
		},
		data,
	)
	return page, data
}

func formMethod(r *http.Request) models.SentimentMethod {
	m := models.SentimentMethod(r.FormValue("method"))
	if !m.Valid() {
		return models.MethodHuggingFace
	}
	return m
}

func SentimentPageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := newSentimentPage(currentSession(appState, r), r)
		page.Render(w, r)
	}
}

func SentimentAnalyzeHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newSentimentPage(s, r)
		if s == nil {
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		data.Text = r.PostFormValue("text")
		data.Method = formMethod(r)

		result, err := appState.Sentiment.Analyze(r.Context(), data.Method, data.Text)
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}
		data.Result = &result

		page.Render(w, r)
	}
}

// SentimentBatchHandler analyses an uploaded CSV and shows the first page of
// results. The results stay on the session for paging and download.
func SentimentBatchHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		if s == nil {
			page, _ := newSentimentPage(nil, r)
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		table, err := handlertools.CSVUpload(w, r, "file", maxUploadBytes(appState))
		if err != nil {
			page, _ := newSentimentPage(s, r)
			renderWithError(w, r, page, err)
			return
		}
		method := formMethod(r)

		var results []models.SentimentResult
		err = s.Exclusive(func() error {
			var err error
			results, err = appState.Sentiment.AnalyzeBatch(r.Context(), method, table)
			return err
		})
		if err != nil {
			page, data := newSentimentPage(s, r)
			data.Method = method
			renderWithError(w, r, page, err)
			return
		}

		s.SetSentimentResults(results)
		page, data := newSentimentPage(s, r)
		data.Method = method
		page.Render(w, r)
	}
}

func SentimentResultsCSVHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		if s == nil {
			handlertools.RenderError(w, models.NewNotFoundError("session"), http.StatusNotFound)
			return
		}
		results := s.SentimentResults()
		if len(results) == 0 {
			handlertools.RenderError(w, models.NewNotFoundError("sentiment results"), http.StatusNotFound)
			return
		}

		var buf bytes.Buffer
		if err := sentiment.WriteCSV(&buf, results); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sentiment_analysis_results.csv"`)
		_, _ = w.Write(buf.Bytes())
	}
}
