package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	// webp sources decode through image.Decode once registered
	_ "golang.org/x/image/webp"
)

// TargetExt is the extension of every converted file.
const TargetExt = ".jpg"

var whiteOpaque = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

type ImageConverter interface {
	Convert(data []byte, quality int) ([]byte, error)
}

type imageConverter struct{}

func NewImageConverter() ImageConverter {
	return &imageConverter{}
}

// Convert decodes the source image, flattens any transparency onto a
// white background and re-encodes it as JPEG at the given quality.
// Output is deterministic for identical input bytes and quality.
func (c *imageConverter) Convert(data []byte, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	flattened := flattenOnWhite(img)

	quality = clampQuality(quality)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flattened, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// flattenOnWhite composites the image over a white background so that
// transparent regions come out white rather than black in the JPEG.
func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), whiteOpaque)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}

func clampQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}

// IsImage sniffs the payload content type.
func IsImage(data []byte) bool {
	return strings.HasPrefix(mimetype.Detect(data).String(), "image/")
}

// SniffExtension returns the extension (with dot) matching the payload
// content, or an empty string when it cannot be determined.
func SniffExtension(data []byte) string {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return ""
	}
	return mtype.Extension()
}
