package renderer

import (
	"context"
	"io"

	"miigate/internal/mii/models"

	dErrors "miigate/pkg/domain-errors"
)

// Branch identifies which upstream rendering service handles a payload.
type Branch string

const (
	// BranchFirstGenStudio renders 94-character share-link payloads.
	BranchFirstGenStudio Branch = "first_gen_studio"
	// BranchLegacyHex renders legacy hardware-format hex data.
	BranchLegacyHex Branch = "legacy_hex"
	// BranchModern renders everything else as an opaque payload.
	BranchModern Branch = "modern"
)

// shareLinkLength is the exact length of a first-generation share-link
// payload. A 94-character hex string is routed to the studio branch too;
// that ambiguity is inherited from the data formats themselves and the
// precedence below is load-bearing.
const shareLinkLength = 94

// Classify picks the branch for canonical Mii data. Purely structural,
// first match wins: exact length 94, then hex-only, then everything else.
func Classify(miiData string) Branch {
	switch {
	case len(miiData) == shareLinkLength:
		return BranchFirstGenStudio
	case models.HexPattern.MatchString(miiData):
		return BranchLegacyHex
	default:
		return BranchModern
	}
}

// FirstGenRenderer renders share-link payloads.
type FirstGenRenderer interface {
	RenderFace(ctx context.Context, data string) (io.ReadCloser, error)
}

// LegacyRenderer renders hex-format Mii data.
type LegacyRenderer interface {
	RenderHex(ctx context.Context, hexData string) (io.ReadCloser, error)
}

// ModernRenderer renders opaque payloads.
type ModernRenderer interface {
	RenderFace(ctx context.Context, data string) (io.ReadCloser, error)
}

// Dispatcher resolves canonical Mii data of unknown exact shape into a
// binary image stream by picking one of three unrelated upstream services.
type Dispatcher struct {
	firstGen FirstGenRenderer
	legacy   LegacyRenderer
	modern   ModernRenderer
}

func NewDispatcher(firstGen FirstGenRenderer, legacy LegacyRenderer, modern ModernRenderer) *Dispatcher {
	return &Dispatcher{firstGen: firstGen, legacy: legacy, modern: modern}
}

// Render classifies miiData and streams the rendered image from the
// selected service. The caller owns the returned stream and decides whether
// to persist it to a cache slot or pass it through to a client.
func (d *Dispatcher) Render(ctx context.Context, miiData string) (io.ReadCloser, error) {
	var (
		body io.ReadCloser
		err  error
	)
	switch Classify(miiData) {
	case BranchFirstGenStudio:
		body, err = d.firstGen.RenderFace(ctx, miiData)
	case BranchLegacyHex:
		body, err = d.legacy.RenderHex(ctx, miiData)
	default:
		body, err = d.modern.RenderFace(ctx, miiData)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "mii render failed")
	}
	return body, nil
}
