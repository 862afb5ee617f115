package models

// MiiType discriminates the three avatar sources a user can pick from.
// The wire values match what the web form submits.
type MiiType string

const (
	// MiiTypeGuest is a preset avatar chosen from a fixed set.
	MiiTypeGuest MiiType = "guest"
	// MiiTypeCMOC is a Check Mii Out Channel entry, identified by a
	// 12-digit entry number and resolved through the legacy gallery.
	MiiTypeCMOC MiiType = "cmoc"
	// MiiTypeUpload is user-supplied data: an account lookup, pasted
	// data or URL, or an uploaded QR/binary file.
	MiiTypeUpload MiiType = "upload"
)

// IsValid reports whether t is one of the recognized variants.
func (t MiiType) IsValid() bool {
	switch t {
	case MiiTypeGuest, MiiTypeCMOC, MiiTypeUpload:
		return true
	}
	return false
}

// UploadMethod discriminates the upload sub-variants.
type UploadMethod string

const (
	UploadMethodNNID      UploadMethod = "nnid"
	UploadMethodPNID      UploadMethod = "pnid"
	UploadMethodDataOrURL UploadMethod = "data_or_url"
	UploadMethodQROrFile  UploadMethod = "qr_or_file"
)

// IsValid reports whether m is one of the recognized sub-variants.
func (m UploadMethod) IsValid() bool {
	switch m {
	case UploadMethodNNID, UploadMethodPNID, UploadMethodDataOrURL, UploadMethodQROrFile:
		return true
	}
	return false
}

// MiiRecord is the canonical persisted avatar state, one per username.
//
// MiiData is one of three canonical shapes (94-char share-link payload,
// hex legacy data, or an opaque renderer payload) and is opaque to every
// component except the renderer dispatcher. CMOCEntryNo is present iff
// MiiType is cmoc, and is always stored dash-free.
type MiiRecord struct {
	MiiType     MiiType
	MiiData     string
	CMOCEntryNo string
}

// DefaultRecord is the record a user starts with at account creation.
func DefaultRecord() MiiRecord {
	return MiiRecord{
		MiiType: MiiTypeGuest,
		MiiData: GuestUnknown,
	}
}
