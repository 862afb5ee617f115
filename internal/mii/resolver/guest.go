package resolver

import (
	"miigate/internal/mii/models"

	dErrors "miigate/pkg/domain-errors"
)

// resolveGuest validates membership in the fixed guest set. The identifier
// is stored unchanged as the canonical data. No network access.
func (r *Resolver) resolveGuest(guestMii string) (models.MiiRecord, error) {
	if guestMii == "" || !models.IsValidGuestMii(guestMii) {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, "guestMii", "unknown guest mii")
	}
	return models.MiiRecord{
		MiiType: models.MiiTypeGuest,
		MiiData: guestMii,
	}, nil
}
