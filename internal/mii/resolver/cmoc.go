package resolver

import (
	"context"
	"errors"
	"strings"

	"miigate/internal/mii/models"
	"miigate/internal/sentinel"

	dErrors "miigate/pkg/domain-errors"
)

// NormalizeEntryNo strips separator dashes and validates that the result is
// exactly 12 decimal digits. Dash placement never affects validity.
func NormalizeEntryNo(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "-", "")
	if len(cleaned) != 12 || !isDigits(cleaned) {
		return "", dErrors.NewField(dErrors.CodeInvalidFormat, "cmocEntryNo",
			"entry number must be exactly 12 numbers long (ignoring dashes)")
	}
	return cleaned, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// resolveCMOC normalizes the entry number and looks up its hex Mii data on
// the legacy gallery. Only a successful lookup produces a record; the caller
// persists both the cleaned entry number and the data, or nothing.
func (r *Resolver) resolveCMOC(ctx context.Context, rawEntryNo string) (models.MiiRecord, error) {
	entryNo, err := NormalizeEntryNo(rawEntryNo)
	if err != nil {
		return models.MiiRecord{}, err
	}

	hexData, err := r.gallery.LookupEntry(ctx, entryNo)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.MiiRecord{}, &dErrors.Error{
				Code:    dErrors.CodeNotFound,
				Field:   "cmocEntryNo",
				Message: "mii entry not found",
				Err:     err,
			}
		}
		return models.MiiRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "legacy gallery lookup failed")
	}

	return models.MiiRecord{
		MiiType:     models.MiiTypeCMOC,
		MiiData:     hexData,
		CMOCEntryNo: entryNo,
	}, nil
}
