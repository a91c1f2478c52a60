package apihandlers

import (
	"bytes"
	"net/http"

	"github.com/jinzhu/copier"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/sentiment"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
)

const (
	ResultsFileName = "sentiment_analysis_results.csv"
	UploadField     = "file"
)

// parseMethod defaults an empty method to the hosted classifier.
func parseMethod(m string) (models.SentimentMethod, error) {
	if m == "" {
		return models.MethodHuggingFace, nil
	}
	method := models.SentimentMethod(m)
	if !method.Valid() {
		return "", models.NewValidationError("unknown analysis method "+m, nil)
	}
	return method, nil
}

// AnalyzeSentimentHandler godoc
//
//	@Summary		Classify one text
//	@Tags			sentiment
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string				true	"Session ID"
//	@Param			body		body		SentimentRequest	true	"Text and method"
//	@Success		200			{object}	SentimentResponse
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		502			{object}	APIError	"Upstream Error"
//	@Router			/api/v1/sessions/{sessionId}/sentiment [post]
func AnalyzeSentimentHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s := sessionFromURL(appState, w, r); s == nil {
			return
		}

		var req SentimentRequest
		if err := decodeAndValidate(r, &req); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}
		method, err := parseMethod(req.Method)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		result, err := appState.Sentiment.Analyze(r.Context(), method, req.Text)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		var resp SentimentResponse
		if err := copier.Copy(&resp, &result); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		renderJSON(w, http.StatusOK, resp)
	}
}

// AnalyzeSentimentBatchHandler godoc
//
//	@Summary		Classify every row of a CSV upload
//	@Description	the upload needs a "text" column; results are returned as CSV
//	@Tags			sentiment
//	@Accept			mpfd
//	@Produce		text/csv
//	@Param			sessionId	path		string	true	"Session ID"
//	@Param			file		formData	file	true	"CSV with a text column"
//	@Param			method		formData	string	false	"huggingface or polarity"
//	@Success		200
//	@Failure		400	{object}	APIError	"Bad Request"
//	@Router			/api/v1/sessions/{sessionId}/sentiment/batch [post]
func AnalyzeSentimentBatchHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromURL(appState, w, r)
		if s == nil {
			return
		}

		table, err := handlertools.CSVUpload(w, r, UploadField, maxUploadBytes(appState))
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}
		method, err := parseMethod(r.FormValue("method"))
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		var results []models.SentimentResult
		err = s.Exclusive(func() error {
			var err error
			results, err = appState.Sentiment.AnalyzeBatch(r.Context(), method, table)
			return err
		})
		if err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}
		s.SetSentimentResults(results)

		var buf bytes.Buffer
		if err := sentiment.WriteCSV(&buf, results); err != nil {
			handlertools.RenderError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+ResultsFileName+`"`)
		_, _ = w.Write(buf.Bytes())
	}
}
