package resolver

import (
	"context"
	"strings"

	"miigate/internal/mii/models"
	"miigate/internal/upstream"

	dErrors "miigate/pkg/domain-errors"
)

// resolveAccount fetches base64 Mii data for a network-account identifier.
// A blank identifier fails before any network call is attempted. The base64
// payload is stored unchanged.
func (r *Resolver) resolveAccount(ctx context.Context, accountID, field string, system upstream.AccountSystem) (models.MiiRecord, error) {
	if strings.TrimSpace(accountID) == "" {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, field, "please enter an account id")
	}

	data, err := r.accounts.MiiData(ctx, accountID, system)
	if err != nil {
		return models.MiiRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "account mii lookup failed")
	}

	return models.MiiRecord{
		MiiType: models.MiiTypeUpload,
		MiiData: data,
	}, nil
}
