package storage

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/nfnt/resize"
)

// ThumbWidth is the width of generated thumbnails; height keeps the aspect ratio.
const ThumbWidth = 320

var ErrUnsupportedFormat = errors.New("storage: unsupported image format")

// ThumbKey derives the thumbnail key: photo.jpg -> photo_thumb.jpg.
func ThumbKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb" + ext
}

// Thumbnail scales a JPEG or PNG image down to width and re-encodes it in
// its original format. Images narrower than width are kept at their size.
func Thumbnail(r io.Reader, width uint) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	if format != "jpeg" && format != "png" {
		return nil, ErrUnsupportedFormat
	}

	if uint(img.Bounds().Dx()) > width {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if format == "jpeg" {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
