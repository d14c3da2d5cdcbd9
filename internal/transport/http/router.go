package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	labelhandler "labelprint/internal/label/handler"
	"labelprint/internal/platform/metrics"
	"labelprint/internal/platform/middleware"
	"labelprint/pkg/platform/httputil"
	"labelprint/pkg/platform/middleware/kiosk"
	"labelprint/pkg/platform/middleware/metadata"
	request "labelprint/pkg/platform/middleware/request"
	"labelprint/pkg/platform/middleware/requesttime"
)

// Deps are the pieces the router mounts. The transport stays thin: label
// rules live in the label service behind Labels.
type Deps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Labels     *labelhandler.Handler
	KioskToken string
}

// NewRouter wires all public endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(middleware.Recover(d.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(kiosk.RequireToken(d.KioskToken, d.Logger))
		d.Labels.Register(r)
	})

	return r
}
