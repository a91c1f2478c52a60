package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/server/apihandlers"
	"github.com/aifirst/llmdemos/pkg/server/webhandlers"
	"github.com/aifirst/llmdemos/pkg/web"
)

var log = internal.GetLogger()

const ReadHeaderTimeout = 5 * time.Second

// Create creates a new HTTP server with the given app state
func Create(appState *app.AppState) *http.Server {
	router := SetupRouter(appState)
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", appState.Config.Server.Host, appState.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

// @title						LLM Demos REST API
// @version					0.x
// @BasePath					/api/v1
// @schemes					http https
func SetupRouter(appState *app.AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", apihandlers.CreateSessionHandler(appState))
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Delete("/", apihandlers.DeleteSessionHandler(appState))
			// Sentiment analysis
			r.Post("/sentiment", apihandlers.AnalyzeSentimentHandler(appState))
			r.Post("/sentiment/batch", apihandlers.AnalyzeSentimentBatchHandler(appState))
			// News summarizer
			r.Post("/summaries", apihandlers.SummarizeHandler(appState))
			// ChainReact
			r.Route("/chainreact/messages", func(r chi.Router) {
				r.Get("/", apihandlers.GetChainReactMessagesHandler(appState))
				r.Post("/", apihandlers.PostChainReactMessageHandler(appState))
			})
			// StockPrize Ally
			r.Post("/forecasts", apihandlers.ForecastUploadHandler(appState))
			r.Post("/forecasts/manual", apihandlers.ForecastManualHandler(appState))
		})
	})

	setupWebRoutes(router, appState)

	return router
}

func setupWebRoutes(router *chi.Mux, appState *app.AppState) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatalf("Failed to create static file system: %s", err)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.NotFound(web.NotFoundHandler())

	router.Get("/", webhandlers.IndexHandler(appState))
	router.Post("/session", webhandlers.StartSessionHandler(appState))
	router.Post("/session/end", webhandlers.EndSessionHandler(appState))

	router.Route("/sentiment", func(r chi.Router) {
		r.Get("/", webhandlers.SentimentPageHandler(appState))
		r.Post("/", webhandlers.SentimentAnalyzeHandler(appState))
		r.Post("/batch", webhandlers.SentimentBatchHandler(appState))
		r.Get("/results.csv", webhandlers.SentimentResultsCSVHandler(appState))
	})
	router.Route("/summarizer", func(r chi.Router) {
		r.Get("/", webhandlers.SummarizerPageHandler(appState))
		r.Post("/", webhandlers.SummarizeHandler(appState))
	})
	router.Route("/chainreact", func(r chi.Router) {
		r.Get("/", webhandlers.ChainReactPageHandler(appState))
		r.Post("/", webhandlers.ChainReactMessageHandler(appState))
	})
	router.Route("/stockprize", func(r chi.Router) {
		r.Get("/", webhandlers.StockPrizePageHandler(appState))
		r.Post("/upload", webhandlers.StockPrizeUploadHandler(appState))
		r.Post("/manual", webhandlers.StockPrizeManualHandler(appState))
	})
}
