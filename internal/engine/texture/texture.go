// Package texture decodes image files into RGBA textures and uploads them to
// the GPU.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu"
)

// ErrNotUploaded is returned when binding a texture that has no GPU handle.
var ErrNotUploaded = errors.New("texture: not uploaded")

// Texture is a decoded image and, once uploaded, its GPU handle.
// Pixels is dropped right after Upload; the handle lives until Release.
type Texture struct {
	Index    int    // declaration order of the owning material
	Name     string // material or file name
	Width    int
	Height   int
	Channels int // 3 for opaque sources, 4 when the source carries alpha
	Pixels   *image.RGBA
	ID       uint32
}

// Decode decodes an image file. The format is chosen by the file extension
// for TGA and by content sniffing for everything else.
func Decode(name string, data []byte) (*Texture, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	b := img.Bounds()
	t := &Texture{
		Name:     name,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: 4,
		Pixels:   ToRGBA(img),
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		t.Channels = 3
	}
	return t, nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Upload creates the GPU texture and releases the decoded pixels.
// Uploading twice is a no-op.
func (t *Texture) Upload(dev gpu.Device) error {
	if t.ID != 0 {
		return nil
	}
	if t.Pixels == nil || len(t.Pixels.Pix) == 0 {
		return fmt.Errorf("texture %s: no pixel data", t.Name)
	}
	t.ID = dev.CreateTexture2D(t.Pixels)
	t.Pixels = nil
	return nil
}

// Bind binds the texture on the given unit.
func (t *Texture) Bind(dev gpu.Device, unit uint32) error {
	if t.ID == 0 {
		return ErrNotUploaded
	}
	dev.BindTexture2D(unit, t.ID)
	return nil
}

// Release deletes the GPU texture.
func (t *Texture) Release(dev gpu.Device) {
	if t.ID != 0 {
		dev.DeleteTexture(t.ID)
		t.ID = 0
	}
	t.Pixels = nil
}
