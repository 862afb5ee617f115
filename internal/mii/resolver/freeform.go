package resolver

import (
	"net/url"
	"strings"

	"miigate/internal/mii/models"

	dErrors "miigate/pkg/domain-errors"
)

// resolveFreeform normalizes pasted input to one of the three canonical
// shapes without any network call. Rules, in order:
//
//  1. an absolute URL carrying a data query parameter yields that parameter
//     verbatim (Mii-Studio-style share links)
//  2. hex-only input is lower-cased (legacy data pastes are case-insensitive)
//  3. anything else passes through trimmed, as an opaque payload for the
//     modern renderer
func (r *Resolver) resolveFreeform(input string) (models.MiiRecord, error) {
	if strings.TrimSpace(input) == "" {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, "miiDataOrUrl",
			"please enter mii data, a file or a mii studio url")
	}

	return models.MiiRecord{
		MiiType: models.MiiTypeUpload,
		MiiData: normalizeDataOrURL(input),
	}, nil
}

func normalizeDataOrURL(input string) string {
	trimmed := strings.TrimSpace(input)

	if parsed, err := url.Parse(trimmed); err == nil && parsed.IsAbs() {
		if data := parsed.Query().Get("data"); data != "" {
			return data
		}
	}

	if models.HexPattern.MatchString(trimmed) {
		return strings.ToLower(trimmed)
	}

	return trimmed
}
