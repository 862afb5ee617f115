package resolver

import (
	"context"
	"encoding/hex"
	"strings"

	"miigate/internal/mii/models"

	dErrors "miigate/pkg/domain-errors"
)

// wiiMiiBlockSize is the size of a raw Wii-format Mii binary (.mae file).
const wiiMiiBlockSize = 74

// ResolveFile handles the two accepted upload flavors:
//
//   - image/jpeg (any extension): a Mii QR capture, forwarded to the legacy
//     gallery's QR endpoint, which answers with hex Mii data
//   - a .mae file with no recognizable MIME type: a raw Wii Mii block of
//     exactly 74 bytes, hex-encoded locally
//
// Everything else is rejected before any network call.
func (r *Resolver) ResolveFile(ctx context.Context, upload models.FileUpload) (models.MiiRecord, error) {
	if upload.ContentType == "image/jpeg" {
		hexData, err := r.gallery.SubmitQR(ctx, upload.Data)
		if err != nil {
			return models.MiiRecord{}, dErrors.Wrap(err, dErrors.CodeUpstream, "qr code submission failed")
		}
		return models.MiiRecord{
			MiiType: models.MiiTypeUpload,
			MiiData: hexData,
		}, nil
	}

	if upload.ContentType != "" && upload.ContentType != "application/octet-stream" {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "this file is not supported")
	}
	if !strings.HasSuffix(upload.Filename, ".mae") {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "this file is not supported")
	}
	if upload.Size != wiiMiiBlockSize || len(upload.Data) != wiiMiiBlockSize {
		return models.MiiRecord{}, dErrors.NewField(dErrors.CodeInvalidFormat, "file", "file has the wrong size")
	}

	return models.MiiRecord{
		MiiType: models.MiiTypeUpload,
		MiiData: hex.EncodeToString(upload.Data),
	}, nil
}
