package models

// UpdateRequest is the discriminated input envelope for the update-Mii
// operation. Which fields matter depends on MiiType and, for uploads,
// UploadMethod; everything else is ignored.
type UpdateRequest struct {
	MiiType      MiiType      `json:"miiType"`
	GuestMii     string       `json:"guestMii"`
	CMOCEntryNo  string       `json:"cmocEntryNo"`
	UploadMethod UploadMethod `json:"uploadMethod"`
	NNID         string       `json:"nnid"`
	PNID         string       `json:"pnid"`
	MiiDataOrURL string       `json:"miiDataOrUrl"`
}

// FileUpload carries an uploaded QR capture or binary Mii file. The bytes
// bypass string normalization entirely.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
