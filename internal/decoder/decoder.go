package decoder

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	apperrors "go-ux-analyzer/internal/errors"
	"go-ux-analyzer/pkg/models"
)

// Decoded is the outcome of decoding one screenshot payload. Raw holds the
// decoded payload bytes for archival; Image is the raster the pipeline
// analyzes, already bounded by the configured maximum dimension.
type Decoded struct {
	Image      image.Image
	Dimensions models.Dimensions
	Format     string
	Raw        []byte
}

// Decoder turns base64 data-URI payloads into in-memory rasters.
type Decoder struct {
	maxDimension int
}

// NewDecoder creates a decoder that downscales any image whose longest side
// exceeds maxDimension. maxDimension must be positive.
func NewDecoder(maxDimension int) *Decoder {
	return &Decoder{maxDimension: maxDimension}
}

// Decode strips the data-URI header, base64-decodes the payload and decodes
// the raster. The comma separating header and payload is mandatory. All
// failures are decode errors; the request carries no partial result.
func (d *Decoder) Decode(payload string) (*Decoded, error) {
	idx := strings.IndexByte(payload, ',')
	if idx < 0 {
		return nil, apperrors.NewDecodeError("invalid image payload: missing data URI delimiter", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(payload[idx+1:])
	if err != nil {
		return nil, apperrors.NewDecodeError("invalid image payload: malformed base64 data", err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.NewDecodeError("invalid image payload: unsupported or corrupt image data", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > d.maxDimension || bounds.Dy() > d.maxDimension {
		// OCR and contour cost scale with pixel count, so oversized
		// screenshots are downscaled rather than rejected.
		img = imaging.Fit(img, d.maxDimension, d.maxDimension, imaging.Lanczos)
		bounds = img.Bounds()
	}

	return &Decoded{
		Image:      img,
		Dimensions: models.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()},
		Format:     format,
		Raw:        raw,
	}, nil
}
