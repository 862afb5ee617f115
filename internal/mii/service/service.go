package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"miigate/internal/mii/metrics"
	"miigate/internal/mii/models"
	"miigate/internal/mii/renderer"
	"miigate/internal/mii/resolver"
	"miigate/internal/mii/store"
	"miigate/internal/sentinel"

	dErrors "miigate/pkg/domain-errors"
)

// Renderer resolves canonical Mii data into a binary image stream.
type Renderer interface {
	Render(ctx context.Context, miiData string) (io.ReadCloser, error)
}

// GalleryRenderer streams a legacy-hex render, used for the pre-commit
// entry-number preview.
type GalleryRenderer interface {
	RenderHex(ctx context.Context, hexData string) (io.ReadCloser, error)
}

// GalleryLookup resolves an entry number to hex Mii data.
type GalleryLookup interface {
	LookupEntry(ctx context.Context, entryNo string) (string, error)
}

// PreviewCache is the per-user rendered preview slot.
type PreviewCache interface {
	Put(username string, image io.Reader) error
}

// BannerNotifier is poked after a successful update so derived artifacts
// (the profile banner) can be regenerated. Its work is outside this service.
type BannerNotifier interface {
	MiiUpdated(ctx context.Context, username string)
}

// Service runs the update pipeline: classify, resolve, persist, and for
// uploads re-render the preview. Each call is one linear flow of control;
// later steps never start if an earlier required step failed.
type Service struct {
	resolver *resolver.Resolver
	records  store.Store
	renderer Renderer
	gallery  GalleryLookup
	legacy   GalleryRenderer
	previews PreviewCache

	banner  BannerNotifier
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBannerNotifier attaches the banner regeneration hook.
func WithBannerNotifier(n BannerNotifier) Option {
	return func(s *Service) { s.banner = n }
}

func New(
	res *resolver.Resolver,
	records store.Store,
	rend Renderer,
	gallery GalleryLookup,
	legacy GalleryRenderer,
	previews PreviewCache,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		resolver: res,
		records:  records,
		renderer: rend,
		gallery:  gallery,
		legacy:   legacy,
		previews: previews,
		logger:   logger,
		tracer:   otel.Tracer("miigate/mii"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateMii resolves the envelope and atomically replaces the user's record.
// On any resolution failure the existing record is left untouched.
func (s *Service) UpdateMii(ctx context.Context, username string, req models.UpdateRequest) error {
	ctx, span := s.tracer.Start(ctx, "mii.update",
		trace.WithAttributes(attribute.String("mii.type", string(req.MiiType))))

	record, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		s.failResolve(span, err)
		return err
	}

	err = s.commit(ctx, username, record)
	span.RecordError(err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	return err
}

// UpdateMiiFromFile is the multipart flavor of UpdateMii.
func (s *Service) UpdateMiiFromFile(ctx context.Context, username string, upload models.FileUpload) error {
	ctx, span := s.tracer.Start(ctx, "mii.update_file",
		trace.WithAttributes(attribute.String("mii.content_type", upload.ContentType)))

	record, err := s.resolver.ResolveFile(ctx, upload)
	if err != nil {
		s.failResolve(span, err)
		return err
	}

	err = s.commit(ctx, username, record)
	span.RecordError(err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	return err
}

func (s *Service) failResolve(span trace.Span, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		s.metrics.IncrementResolveFailure(string(domainErr.Code))
	} else {
		s.metrics.IncrementResolveFailure(string(dErrors.CodeInternal))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

// commit persists the resolved record, then runs the best-effort post-steps.
func (s *Service) commit(ctx context.Context, username string, record models.MiiRecord) error {
	// Resolution already succeeded; an empty payload here would clobber a
	// valid record and must never be written.
	if record.MiiData == "" {
		return dErrors.New(dErrors.CodeInternal, "refusing to persist empty mii data")
	}

	if err := s.records.SetMii(ctx, username, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist mii record")
	}

	s.metrics.IncrementMiiUpdate(string(record.MiiType))
	s.logger.InfoContext(ctx, "mii updated",
		"username", username,
		"mii_type", record.MiiType,
	)

	// Post-persist steps are advisory. Their failure is logged, never
	// propagated, and never rolls back the committed record.
	if record.MiiType == models.MiiTypeUpload {
		if err := s.refreshPreview(ctx, username, record.MiiData); err != nil {
			s.metrics.IncrementPreviewCacheFailure()
			s.logger.ErrorContext(ctx, "preview refresh failed",
				"username", username,
				"error", err,
			)
		}
	}
	if s.banner != nil {
		s.banner.MiiUpdated(ctx, username)
	}

	return nil
}

// refreshPreview renders the new data and writes the user's cache slot.
// Best-effort by contract: the canonical record and the rendered preview are
// allowed to diverge transiently.
func (s *Service) refreshPreview(ctx context.Context, username, miiData string) error {
	s.metrics.IncrementRenderDispatch(string(renderer.Classify(miiData)))

	start := time.Now()
	image, err := s.renderer.Render(ctx, miiData)
	s.metrics.ObserveRender(start)
	if err != nil {
		return err
	}
	defer image.Close()

	return s.previews.Put(username, image)
}

// PreviewEntry streams a live render for a gallery entry number, used by the
// UI before the user commits. Nothing is persisted.
func (s *Service) PreviewEntry(ctx context.Context, rawEntryNo string) (io.ReadCloser, error) {
	entryNo, err := resolver.NormalizeEntryNo(rawEntryNo)
	if err != nil {
		return nil, err
	}

	hexData, err := s.gallery.LookupEntry(ctx, entryNo)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "mii entry not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "legacy gallery lookup failed")
	}

	image, err := s.legacy.RenderHex(ctx, hexData)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "legacy render failed")
	}
	return image, nil
}
