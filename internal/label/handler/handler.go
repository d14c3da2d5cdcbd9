package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"labelprint/internal/label/render"
	"labelprint/internal/label/service"
	"labelprint/pkg/platform/httputil"
	"labelprint/pkg/requestcontext"
)

// Service defines the label operations the handler needs.
type Service interface {
	Print(ctx context.Context, raw string) (*service.Result, error)
	Preview(ctx context.Context, raw string) (*render.Label, error)
}

// Handler wires label endpoints to the print service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a label handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts label endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/print", h.HandlePrint)
	r.Post("/api/preview", h.HandlePreview)
}

// HandlePrint handles POST /api/print.
func (h *Handler) HandlePrint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := decodePrintRequest(w, r)

	res, err := h.service.Print(ctx, req.RawCode())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

// HandlePreview handles POST /api/preview and returns the label PDF without
// printing it.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := decodePrintRequest(w, r)

	lbl, err := h.service.Preview(ctx, req.RawCode())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(lbl.PDF)))
	w.Header().Set("Content-Disposition", `inline; filename="label.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(lbl.PDF); err != nil {
		h.logger.ErrorContext(ctx, "failed to write preview",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
