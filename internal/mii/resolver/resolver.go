package resolver

import (
	"context"

	"miigate/internal/mii/models"
	"miigate/internal/upstream"

	dErrors "miigate/pkg/domain-errors"
)

// GalleryClient is the slice of the legacy gallery the resolvers need.
type GalleryClient interface {
	LookupEntry(ctx context.Context, entryNo string) (string, error)
	SubmitQR(ctx context.Context, data []byte) (string, error)
}

// AccountClient resolves a network-account identifier to base64 Mii data.
type AccountClient interface {
	MiiData(ctx context.Context, accountID string, system upstream.AccountSystem) (string, error)
}

// Resolver turns a discriminated update envelope into a canonical MiiRecord.
// Each source has its own validation rules and upstream contract; no two
// resolvers share state, so a Resolver is safe for concurrent use.
type Resolver struct {
	gallery  GalleryClient
	accounts AccountClient
}

func New(gallery GalleryClient, accounts AccountClient) *Resolver {
	return &Resolver{gallery: gallery, accounts: accounts}
}

// ResolveFunc is a selected source resolver, ready to run. Resolvers assume
// the classifier already vetted the envelope's discriminators.
type ResolveFunc func(ctx context.Context) (models.MiiRecord, error)

// Classify routes an envelope to exactly one resolver. It is a pure
// function: no side effects, no I/O. An unrecognized miiType or
// uploadMethod fails here, before any resolver executes.
func (r *Resolver) Classify(req models.UpdateRequest) (ResolveFunc, error) {
	switch req.MiiType {
	case models.MiiTypeGuest:
		return func(context.Context) (models.MiiRecord, error) {
			return r.resolveGuest(req.GuestMii)
		}, nil
	case models.MiiTypeCMOC:
		return func(ctx context.Context) (models.MiiRecord, error) {
			return r.resolveCMOC(ctx, req.CMOCEntryNo)
		}, nil
	case models.MiiTypeUpload:
		switch req.UploadMethod {
		case models.UploadMethodNNID:
			return func(ctx context.Context) (models.MiiRecord, error) {
				return r.resolveAccount(ctx, req.NNID, "nnid", upstream.AccountNNID)
			}, nil
		case models.UploadMethodPNID:
			return func(ctx context.Context) (models.MiiRecord, error) {
				return r.resolveAccount(ctx, req.PNID, "pnid", upstream.AccountPNID)
			}, nil
		case models.UploadMethodDataOrURL:
			return func(context.Context) (models.MiiRecord, error) {
				return r.resolveFreeform(req.MiiDataOrURL)
			}, nil
		case models.UploadMethodQROrFile:
			// The file flavor arrives on the multipart endpoint, not in
			// the JSON envelope.
			return nil, dErrors.NewField(dErrors.CodeInvalidFormat, "uploadMethod", "file uploads use the multipart endpoint")
		default:
			return nil, dErrors.NewField(dErrors.CodeInvalidFormat, "uploadMethod", "unrecognized upload method")
		}
	default:
		return nil, dErrors.NewField(dErrors.CodeInvalidFormat, "miiType", "unrecognized mii type")
	}
}

// Resolve classifies and runs the selected resolver in one step.
func (r *Resolver) Resolve(ctx context.Context, req models.UpdateRequest) (models.MiiRecord, error) {
	resolve, err := r.Classify(req)
	if err != nil {
		return models.MiiRecord{}, err
	}
	return resolve(ctx)
}
