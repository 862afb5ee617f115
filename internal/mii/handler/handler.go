package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"miigate/internal/mii/models"
	"miigate/internal/platform/middleware"
	"miigate/pkg/platform/httputil"

	dErrors "miigate/pkg/domain-errors"
)

// maxUploadBytes caps the multipart upload body. QR captures are small
// camera JPEGs; anything bigger is not a Mii.
const maxUploadBytes = 4 << 20

// Service defines the gateway operations the handlers expose.
type Service interface {
	UpdateMii(ctx context.Context, username string, req models.UpdateRequest) error
	UpdateMiiFromFile(ctx context.Context, username string, upload models.FileUpload) error
	PreviewEntry(ctx context.Context, entryNo string) (io.ReadCloser, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the authenticated account routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/account/mii", h.HandleUpdateMii)
	r.Post("/account/mii-upload", h.HandleUpdateMiiFromFile)
}

// RegisterPublic mounts the unauthenticated preview route.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/cmoc/{entryNo}", h.HandlePreviewEntry)
}

// HandleUpdateMii updates the caller's Mii from a JSON envelope.
func (h *Handler) HandleUpdateMii(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	username, ok := h.requireUsername(w, ctx, requestID)
	if !ok {
		return
	}

	req, ok := httputil.DecodeJSON[models.UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.UpdateMii(ctx, username, *req); err != nil {
		h.logger.ErrorContext(ctx, "update mii failed",
			"error", err,
			"request_id", requestID,
			"username", username,
			"mii_type", req.MiiType,
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleUpdateMiiFromFile updates the caller's Mii from an uploaded QR code
// or binary Mii file.
func (h *Handler) HandleUpdateMiiFromFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	username, ok := h.requireUsername(w, ctx, requestID)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
				Error: string(dErrors.CodeInvalidFormat),
				Field: "file",
			})
			return
		}
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "please choose a file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "could not read file"))
		return
	}

	upload := models.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}

	if err := h.service.UpdateMiiFromFile(ctx, username, upload); err != nil {
		h.logger.ErrorContext(ctx, "update mii from file failed",
			"error", err,
			"request_id", requestID,
			"username", username,
			"filename", header.Filename,
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandlePreviewEntry streams a live gallery render for an entry number.
func (h *Handler) HandlePreviewEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	entryNo := chi.URLParam(r, "entryNo")

	image, err := h.service.PreviewEntry(ctx, entryNo)
	if err != nil {
		h.logger.ErrorContext(ctx, "cmoc preview failed",
			"error", err,
			"request_id", requestID,
			"entry_no", entryNo,
		)
		httputil.WriteError(w, err)
		return
	}
	defer image.Close()

	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, image); err != nil {
		h.logger.ErrorContext(ctx, "streaming cmoc preview failed",
			"error", err,
			"request_id", requestID,
		)
	}
}

func (h *Handler) requireUsername(w http.ResponseWriter, ctx context.Context, requestID string) (string, bool) {
	username := middleware.GetUsername(ctx)
	if username == "" {
		h.logger.WarnContext(ctx, "no authenticated identity bound to request",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized"))
		return "", false
	}
	return username, true
}
