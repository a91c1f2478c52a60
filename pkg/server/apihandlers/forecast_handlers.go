package apihandlers

import (
	"net/http"
	"strings"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/forecast"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
	"github.com/aifirst/llmdemos/pkg/session"
)

// PriceColumnFields are the form fields naming the close, open, high, low and
// volume columns of an upload.
var PriceColumnFields = []string{"close", "open", "high", "low", "volume"}

// ForecastUploadHandler godoc
//
//	@Summary		Forecast from an uploaded CSV
//	@Tags			stockprize
//	@Accept			mpfd
//	@Produce		json
//	@Param			sessionId	path		string	true	"Session ID"
//	@Param			file		formData	file	true	"Historical prices"
//	@Param			close		formData	string	true	"Closing price column"
//	@Param			open		formData	string	true	"Opening price column"
//	@Param			high		formData	string	true	"High price column"
//	@Param			low			formData	string	true	"Low price column"
//	@Param			volume		formData	string	true	"Volume column"
//	@Success		200			{object}	ForecastResponse
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		422			{object}	APIError	"Unparseable Forecast"
//	@Router			/api/v1/sessions/{sessionId}/forecasts [post]
func ForecastUploadHandler(appState *app.AppState) http.HandlerFunc {
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

		columns := make([]string, len(PriceColumnFields))
		for i, f := range PriceColumnFields {
			columns[i] = strings.TrimSpace(r.FormValue(f))
		}

		ds, err := forecast.FromTable(table, columns)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		runForecast(appState, s, ds, w, r)
	}
}

// ForecastManualHandler godoc
//
//	@Summary		Forecast from manually entered series
//	@Tags			stockprize
//	@Accept			json
//	@Produce		json
//	@Param			sessionId	path		string					true	"Session ID"
//	@Param			body		body		forecast.ManualEntry	true	"Comma-separated series"
//	@Success		200			{object}	ForecastResponse
//	@Failure		400			{object}	APIError	"Bad Request"
//	@Failure		422			{object}	APIError	"Unparseable Forecast"
//	@Router			/api/v1/sessions/{sessionId}/forecasts/manual [post]
func ForecastManualHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromURL(appState, w, r)
		if s == nil {
			return
		}

		var entry forecast.ManualEntry
		if err := decodeAndValidate(r, &entry); err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		ds, err := forecast.FromManual(entry)
		if err != nil {
			handlertools.RenderError(w, err, http.StatusBadRequest)
			return
		}

		runForecast(appState, s, ds, w, r)
	}
}

func runForecast(
	appState *app.AppState,
	s *session.Session,
	ds *forecast.Dataset,
	w http.ResponseWriter,
	r *http.Request,
) {
	var fc *models.Forecast
	err := s.Exclusive(func() error {
		var err error
		fc, err = appState.Forecaster(s).Run(r.Context(), ds)
		return err
	})
	if err != nil {
		handlertools.RenderError(w, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, http.StatusOK, ForecastResponse{
		Values:      fc.Values,
		Context:     fc.Context,
		Explanation: fc.Explanation,
		Series:      ds.Series,
	})
}
