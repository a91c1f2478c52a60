package webhandlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/forecast"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/server/handlertools"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/web"
)

const previewRows = 5

type ColumnField struct {
	Field string
	Label string
	Value string
}

type StockPrizeData struct {
	SessionData
	Mode     string
	Columns  []ColumnField
	Manual   forecast.ManualEntry
	Preview  *corpus.Table
	Periods  int
	Forecast *models.Forecast
	Chart    template.HTML
}

func defaultColumnFields() []ColumnField {
	return []ColumnField{
		{Field: "close", Label: "Closing price column", Value: "Close/Last"},
		{Field: "open", Label: "Opening price column", Value: "Open"},
		{Field: "high", Label: "High price column", Value: "High"},
		{Field: "low", Label: "Low price column", Value: "Low"},
		{Field: "volume", Label: "Volume column", Value: "Volume"},
	}
}

func newStockPrizePage(appState *app.AppState, s *session.Session, mode string) (*web.Page, *StockPrizeData) {
	data := &StockPrizeData{
		SessionData: sessionData(s),
		Mode:        mode,
		Columns:     defaultColumnFields(),
		Periods:     appState.Config.Apps.StockPrize.ForecastPeriods,
	}
	page := web.NewPage(
		"StockPrize Ally",
		"Upload historical stock prices or enter them by hand to forecast the next periods.",
		"/stockprize",
		[]string{
			"templates/pages/stockprize.html",
			"templates/components/content/*.html",
		},
		data,
	)
	return page, data
}

// preview returns the first rows of the dataset for display.
func preview(t *corpus.Table) *corpus.Table {
	rows := t.Rows
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}
	return &corpus.Table{Header: t.Header, Rows: rows}
}

func StockPrizePageHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode != "manual" {
			mode = "upload"
		}
		page, _ := newStockPrizePage(appState, currentSession(appState, r), mode)
		page.Render(w, r)
	}
}

func StockPrizeUploadHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newStockPrizePage(appState, s, "upload")
		if s == nil {
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		table, err := handlertools.CSVUpload(w, r, "file", maxUploadBytes(appState))
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}

		columns := make([]string, len(data.Columns))
		for i := range data.Columns {
			data.Columns[i].Value = strings.TrimSpace(r.FormValue(data.Columns[i].Field))
			columns[i] = data.Columns[i].Value
		}

		ds, err := forecast.FromTable(table, columns)
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}

		runForecast(appState, s, ds, page, data, w, r)
	}
}

func StockPrizeManualHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := currentSession(appState, r)
		page, data := newStockPrizePage(appState, s, "manual")
		if s == nil {
			renderWithError(w, r, page, ErrNoSession)
			return
		}

		data.Manual = forecast.ManualEntry{
			Close:  r.PostFormValue("close"),
			Open:   r.PostFormValue("open"),
			High:   r.PostFormValue("high"),
			Low:    r.PostFormValue("low"),
			Volume: r.PostFormValue("volume"),
		}

		ds, err := forecast.FromManual(data.Manual)
		if err != nil {
			renderWithError(w, r, page, err)
			return
		}

		runForecast(appState, s, ds, page, data, w, r)
	}
}

func runForecast(
	appState *app.AppState,
	s *session.Session,
	ds *forecast.Dataset,
	page *web.Page,
	data *StockPrizeData,
	w http.ResponseWriter,
	r *http.Request,
) {
	data.Preview = preview(ds.Table)

	err := s.Exclusive(func() error {
		var err error
		data.Forecast, err = appState.Forecaster(s).Run(r.Context(), ds)
		return err
	})
	if err != nil {
		renderWithError(w, r, page, err)
		return
	}

	data.Chart = web.PriceChart(ds.Series, data.Forecast.Values).SVG()
	page.Render(w, r)
}
