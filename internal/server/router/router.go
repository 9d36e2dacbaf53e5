package router

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"go.uber.org/zap"

	"phonebook/internal/server/database"
	"phonebook/internal/server/handlers"
	"phonebook/internal/server/websocket"
)

// Stats is read by the status screen.
type Stats struct {
	Requests atomic.Int64
	Errors   atomic.Int64
}

type Options struct {
	Title   string
	Version string
	Store   database.Store
	Hub     *websocket.Hub
	Logger  *zap.Logger
	Stats   *Stats
}

// New mounts the persons API under /api, the change feed at /ws and
// operational endpoints at /healthz and /metrics.
func New(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Stats == nil {
		opts.Stats = new(Stats)
	}
	set := metrics.NewSet()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		set.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	})
	if opts.Hub != nil {
		hub := opts.Hub
		set.NewGauge("phonebook_ws_subscribers", func() float64 { return float64(hub.Subscribers()) })
		mux.Handle("/ws", hub.Handler())
	}

	root := humago.New(mux, huma.DefaultConfig(opts.Title, opts.Version))
	api := huma.NewGroup(root, "/api")
	api.UseMiddleware(
		logRequests(opts.Logger),
		meterRequests(set, opts.Stats),
	)
	(&handlers.Persons{
		Store:        opts.Store,
		Events:       publisher(opts.Hub),
		ErrorHandler: errorHandler(opts.Logger),
	}).Register(api)

	return mux
}

func publisher(hub *websocket.Hub) handlers.Publisher {
	if hub == nil {
		return nil
	}
	return hub
}

func logRequests(logger *zap.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)
		logger.Info(ctx.Operation().Method+" "+ctx.Operation().Path,
			zap.String("from", ctx.RemoteAddr()),
			zap.String("ua", ctx.Header("User-Agent")),
			zap.Int("status", ctx.Status()),
			zap.Duration("dur", time.Since(start)),
		)
	}
}

func meterRequests(set *metrics.Set, stats *Stats) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		stats.Requests.Add(1)
		if ctx.Status() >= 500 {
			stats.Errors.Add(1)
		}
		labels := `{method="` + op.Method + `",path="` + op.Path + `",status="` + strconv.Itoa(ctx.Status()) + `"}`
		set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		set.GetOrCreateHistogram("http_request_duration_seconds" + labels).UpdateDuration(start)
	}
}

// errorHandler logs handler errors at a level matching their status.
func errorHandler(logger *zap.Logger) func(context.Context, error) {
	return func(_ context.Context, err error) {
		var statusErr huma.StatusError
		if errors.As(err, &statusErr) && statusErr.GetStatus() < 500 {
			logger.Debug("request rejected", zap.Error(err), zap.Int("status", statusErr.GetStatus()))
			return
		}
		logger.Error("request failed", zap.Error(err))
	}
}
