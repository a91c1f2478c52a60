package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/llms"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/sentiment"
	"github.com/aifirst/llmdemos/pkg/server/apihandlers"
	"github.com/aifirst/llmdemos/pkg/server/webhandlers"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/testutils"
)

type testServer struct {
	router   *chi.Mux
	appState *app.AppState
	chat     *testutils.FakeChat
}

func newTestServer(t *testing.T, responses ...string) *testServer {
	t.Helper()

	prices := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testutils.PricesCSV))
	}))
	t.Cleanup(prices.Close)

	cfg := testutils.NewTestConfig()
	cfg.Apps.StockPrize.CorpusURL = prices.URL
	cfg.Apps.ChainReact.CorpusURL = prices.URL

	chat := testutils.NewFakeChat(responses...)
	appState := app.NewAppStateWith(
		cfg,
		prompts.NewComposer(nil, 0),
		sentiment.NewService(map[models.SentimentMethod]models.SentimentAnalyzer{
			models.MethodPolarity: sentiment.NewPolarityAnalyzer(cfg.Sentiment.PolarityThreshold),
		}),
		llms.NewRetryableHTTPClient(0, llms.DefaultHTTPTimeout),
		func(apiKey string) (session.Clients, error) {
			if err := llms.ValidateAPIKey(apiKey, cfg.LLM.APIKeyPrefix, 0); err != nil {
				return session.Clients{}, err
			}
			return session.Clients{Chat: chat, Embeddings: testutils.NewFakeEmbedder()}, nil
		},
	)

	return &testServer{router: SetupRouter(appState), appState: appState, chat: chat}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) session(t *testing.T) *session.Session {
	t.Helper()
	s, err := ts.appState.Sessions.Create("sk-test")
	require.NoError(t, err)
	return s
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, target, csv string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func priceColumns() map[string]string {
	fields := make(map[string]string, len(apihandlers.PriceColumnFields))
	for i, f := range apihandlers.PriceColumnFields {
		fields[f] = testutils.PriceColumns[i]
	}
	return fields
}

func TestHeartbeatAndVersion(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.VersionString, rec.Header().Get(versionHeader))
}

func TestStaticAssets(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sidebar")
}

func TestAPISessionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions", apihandlers.CreateSessionRequest{APIKey: "sk-test"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp apihandlers.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, ts.appState.Sessions.Len())

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+resp.ID, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/"+resp.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPICreateSession_InvalidKey(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions", apihandlers.CreateSessionRequest{APIKey: "pk-nope"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, ts.appState.Sessions.Len())
}

func TestAPIUnknownSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions/missing/summaries", apihandlers.SummaryRequest{Article: "x"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPISentiment(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)
	base := "/api/v1/sessions/" + s.ID

	rec := ts.do(jsonRequest(t, http.MethodPost, base+"/sentiment", apihandlers.SentimentRequest{
		Text:   "The delivery was very good",
		Method: string(models.MethodPolarity),
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apihandlers.SentimentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(models.SentimentPositive), resp.Label)
	assert.Equal(t, string(models.MethodPolarity), resp.Method)

	rec = ts.do(jsonRequest(t, http.MethodPost, base+"/sentiment", apihandlers.SentimentRequest{
		Text:   "",
		Method: string(models.MethodPolarity),
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(jsonRequest(t, http.MethodPost, base+"/sentiment", apihandlers.SentimentRequest{
		Text:   "fine",
		Method: "vibes",
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISentimentBatch(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	rec := ts.do(multipartRequest(t, "/api/v1/sessions/"+s.ID+"/sentiment/batch", testutils.ReviewsCSV, map[string]string{
		"method": string(models.MethodPolarity),
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), apihandlers.ResultsFileName)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Text,Sentiment,Score/Polarity", lines[0])
	assert.Len(t, s.SentimentResults(), 3)
}

func TestAPISentimentBatch_MissingColumn(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	rec := ts.do(multipartRequest(t, "/api/v1/sessions/"+s.ID+"/sentiment/batch", testutils.PricesCSV, map[string]string{
		"method": string(models.MethodPolarity),
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), sentiment.TextColumn)
}

func TestAPISummary(t *testing.T) {
	ts := newTestServer(t, "A short summary.")
	s := ts.session(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions/"+s.ID+"/summaries", apihandlers.SummaryRequest{
		Article: "A long article about ports.",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apihandlers.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A short summary.", resp.Summary)
}

func TestAPIChainReact(t *testing.T) {
	ts := newTestServer(t, "Hello! Ask me anything.", "Truck is cheapest.")
	s := ts.session(t)
	target := "/api/v1/sessions/" + s.ID + "/chainreact/messages"

	rec := ts.do(httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apihandlers.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, models.RoleAssistant, resp.Messages[0].Role)

	rec = ts.do(jsonRequest(t, http.MethodPost, target, apihandlers.ChatMessageRequest{Message: "Which mode is cheapest?"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp = apihandlers.ChatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Reply)
	assert.Equal(t, "Truck is cheapest.", resp.Reply.Content)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "Which mode is cheapest?", resp.Messages[1].Content)
}

func TestAPIForecast(t *testing.T) {
	ts := newTestServer(t, "230.1, 231.2, 232.3", "Prices keep rising.")
	s := ts.session(t)

	rec := ts.do(multipartRequest(t, "/api/v1/sessions/"+s.ID+"/forecasts", testutils.PricesCSV, priceColumns()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apihandlers.ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []float64{230.1, 231.2, 232.3}, resp.Values)
	assert.Equal(t, "Prices keep rising.", resp.Explanation)
	assert.Len(t, resp.Series.Rows, 4)
}

func TestAPIForecast_Unparseable(t *testing.T) {
	ts := newTestServer(t, "I am unable to forecast that.")
	s := ts.session(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions/"+s.ID+"/forecasts/manual", map[string]string{
		"close":  "10, 11, 12",
		"open":   "9, 10, 11",
		"high":   "11, 12, 13",
		"low":    "8, 9, 10",
		"volume": "100, 200, 300",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPIForecastManual_MissingFields(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions/"+s.ID+"/forecasts/manual", map[string]string{
		"close": "",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request")
	assert.Empty(t, ts.chat.Requests())
}

func TestAPIForecastManual_NonFinite(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	rec := ts.do(jsonRequest(t, http.MethodPost, "/api/v1/sessions/"+s.ID+"/forecasts/manual", map[string]string{
		"close":  "nan, 1, 2",
		"open":   "1, 2, 3",
		"high":   "1, 2, 3",
		"low":    "1, 2, 3",
		"volume": "1, 2, 3",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.chat.Requests())
}

func TestAPIForecast_NonFiniteReply(t *testing.T) {
	ts := newTestServer(t, "230.1, NaN, 232.3")
	s := ts.session(t)

	rec := ts.do(multipartRequest(t, "/api/v1/sessions/"+s.ID+"/forecasts", testutils.PricesCSV, priceColumns()))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, ts.chat.Requests(), 1)
}

func TestAPIForecast_BadColumns(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	fields := priceColumns()
	fields["close"] = "Nope"
	rec := ts.do(multipartRequest(t, "/api/v1/sessions/"+s.ID+"/forecasts", testutils.PricesCSV, fields))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.chat.Requests())
}

func TestWebIndex(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "StockPrize Ally")
	assert.Contains(t, body, `name="api_key"`)
}

func TestWebNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSessionFlow(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{"api_key": {"sk-test"}, "next": {"/sentiment"}}
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := ts.do(req)

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/sentiment", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, webhandlers.SessionCookie, cookies[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/sentiment", nil)
	req.AddCookie(cookies[0])
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "End session")

	req = httptest.NewRequest(http.MethodPost, "/session/end", nil)
	req.AddCookie(cookies[0])
	rec = ts.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, ts.appState.Sessions.Len())
}

func TestWebStartSession_InvalidKey(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{"api_key": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := ts.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert warning")
}

func TestWebSentimentWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{"text": {"good"}, "method": {"polarity"}}
	req := httptest.NewRequest(http.MethodPost, "/sentiment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := ts.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), webhandlers.ErrNoSession.Error())
}

func TestWebSentimentAnalyze(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)

	form := url.Values{"text": {"The courier was very good"}, "method": {"polarity"}}
	req := httptest.NewRequest(http.MethodPost, "/sentiment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.AddCookie(&http.Cookie{Name: webhandlers.SessionCookie, Value: s.ID})
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, string(models.SentimentPositive))
}

func TestWebSentimentBatchAndDownload(t *testing.T) {
	ts := newTestServer(t)
	s := ts.session(t)
	cookie := &http.Cookie{Name: webhandlers.SessionCookie, Value: s.ID}

	req := multipartRequest(t, "/sentiment/batch", testutils.ReviewsCSV, map[string]string{"method": "polarity"})
	req.AddCookie(cookie)
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Download Results")
	assert.Contains(t, rec.Body.String(), "It arrived on Tuesday")

	req = httptest.NewRequest(http.MethodGet, "/sentiment/results.csv", nil)
	req.AddCookie(cookie)
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Text,Sentiment,Score/Polarity"))
}

func TestWebStockPrizeUpload(t *testing.T) {
	ts := newTestServer(t, "230, 231, 232", "Prices keep rising.")
	s := ts.session(t)

	req := multipartRequest(t, "/stockprize/upload", testutils.PricesCSV, priceColumns())
	req.AddCookie(&http.Cookie{Name: webhandlers.SessionCookie, Value: s.ID})
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "Prices keep rising.")
	assert.Contains(t, body, "Data Preview")
}

func TestWebChainReact(t *testing.T) {
	ts := newTestServer(t, "Hello! Ask me anything.", "Sea freight is cheapest.")
	s := ts.session(t)
	cookie := &http.Cookie{Name: webhandlers.SessionCookie, Value: s.ID}

	req := httptest.NewRequest(http.MethodGet, "/chainreact", nil)
	req.AddCookie(cookie)
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Hello! Ask me anything.")

	form := url.Values{"message": {"What is cheapest?"}}
	req = httptest.NewRequest(http.MethodPost, "/chainreact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Sea freight is cheapest.")
	assert.Contains(t, rec.Body.String(), "What is cheapest?")
}
