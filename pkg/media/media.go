// Package media normalises uploaded pictures before they are stored.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/storage"
	"github.com/disintegration/imaging"
)

// Preset describes the target geometry of an image. Crop fills the exact
// box; otherwise the image is fitted inside it and never upscaled.
type Preset struct {
	Width   int
	Height  int
	Crop    bool
	Quality int
}

var (
	AvatarPreset = Preset{Width: 400, Height: 400, Crop: true, Quality: 85}
	PhotoPreset  = Preset{Width: 1200, Height: 1200, Quality: 85}
	PrizePreset  = Preset{Width: 800, Height: 800, Quality: 85}
)

const dataURLPrefix = "data:image/jpeg;base64,"

// IsImage reports whether a multipart content type is an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// Process decodes r and re-encodes it as JPEG according to p.
func Process(r io.Reader, p Preset) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperror.BadRequest("Invalid image format")
	}

	var out image.Image = img
	bounds := img.Bounds()
	switch {
	case p.Crop:
		out = imaging.Fill(img, p.Width, p.Height, imaging.Center, imaging.Lanczos)
	case bounds.Dx() > p.Width || bounds.Dy() > p.Height:
		out = imaging.Fit(img, p.Width, p.Height, imaging.Lanczos)
	}

	quality := p.Quality
	if quality == 0 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func DataURL(data []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data)
}

// Publisher processes an upload and returns the URL it can be served from.
type Publisher interface {
	Publish(ctx context.Context, r io.Reader, preset Preset, folder, fileName string) (string, error)
}

type publisher struct {
	store storage.ImageStorage
}

// NewPublisher uploads to store, or inlines images as data URLs when store
// is nil.
func NewPublisher(store storage.ImageStorage) Publisher {
	return &publisher{store: store}
}

func (p *publisher) Publish(ctx context.Context, r io.Reader, preset Preset, folder, fileName string) (string, error) {
	data, err := Process(r, preset)
	if err != nil {
		return "", err
	}

	if p.store == nil {
		return DataURL(data), nil
	}

	url, err := p.store.UploadImage(ctx, bytes.NewReader(data), folder, fileName)
	if err != nil {
		return "", err
	}
	return url, nil
}
