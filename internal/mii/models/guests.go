package models

// GuestUnknown is the "no guest selected" fallback. It is itself a valid
// guest identifier.
const GuestUnknown = "unknown"

// guestMiis is the fixed set of preset guest avatars the UI offers.
var guestMiis = map[string]struct{}{
	"a":          {},
	"b":          {},
	"c":          {},
	"d":          {},
	"e":          {},
	"f":          {},
	GuestUnknown: {},
}

// IsValidGuestMii reports whether id names one of the preset guest avatars.
func IsValidGuestMii(id string) bool {
	_, ok := guestMiis[id]
	return ok
}
