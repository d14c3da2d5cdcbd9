package httptransport

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"labelprint/internal/label"
	labelhandler "labelprint/internal/label/handler"
	"labelprint/internal/label/render"
	"labelprint/internal/label/service"
	"labelprint/internal/platform/metrics"
	request "labelprint/pkg/platform/middleware/request"
	"labelprint/pkg/testutil"
)

type fixedSubmitter struct{}

func (fixedSubmitter) Submit(context.Context, []byte, string) (string, error) {
	return "1234", nil
}

func newTestRouter(t *testing.T, token string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	reg := prometheus.NewRegistry()
	svc := service.New(label.AlphanumericPolicy(), render.New(), fixedSubmitter{}, service.WithLogger(logger))

	return NewRouter(Deps{
		Logger:     logger,
		Metrics:    metrics.New(reg),
		Gatherer:   reg,
		Labels:     labelhandler.New(svc, logger),
		KioskToken: token,
	})
}

func TestHealthz(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(t, ""), testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "ok")
	assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
}

func TestPrintThroughRouter(t *testing.T) {
	router := newTestRouter(t, "")
	rr := testutil.DoRequest(router, testutil.NewPrintRequest(t, "/api/print", "ABC-123"))

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "job_id", "1234")

	metricsRR := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, metricsRR)
	assert.True(t, strings.Contains(metricsRR.Body.String(), `labelprint_http_requests_total{method="POST",route="/api/print",status="200"} 1`))
}

func TestKioskTokenGuardsPrint(t *testing.T) {
	router := newTestRouter(t, "kiosk-secret")

	rr := testutil.DoRequest(router, testutil.NewPrintRequest(t, "/api/print", "ABC-123"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	req := testutil.WithKioskToken(testutil.NewPrintRequest(t, "/api/print", "ABC-123"), "kiosk-secret")
	testutil.AssertStatusOK(t, testutil.DoRequest(router, req))

	wrong := testutil.WithKioskToken(testutil.NewPrintRequest(t, "/api/preview", "ABC-123"), "guess")
	testutil.AssertStatusAndError(t, testutil.DoRequest(router, wrong), http.StatusUnauthorized, "unauthorized")

	preview := testutil.WithKioskToken(testutil.NewPrintRequest(t, "/api/preview", "ABC-123"), "kiosk-secret")
	testutil.AssertPDF(t, testutil.DoRequest(router, preview))

	// health stays open for load balancers
	testutil.AssertStatusOK(t, testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz")))
}

func TestMethodNotAllowed(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(t, ""), testutil.NewRequest(t, http.MethodGet, "/api/print"))
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
