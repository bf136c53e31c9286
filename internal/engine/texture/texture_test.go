package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Rayanapati/CSU44052-Serious-Game/internal/engine/gpu/gputest"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 1x2 image stored bottom row first: blue then red (BGR order).
	data := tgaHeader(TGATypeUncompressed, 1, 2, 24, 0)
	data = append(data, 255, 0, 0) // bottom: blue
	data = append(data, 0, 0, 255) // top: red

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	rgba := img.(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba.RGBAAt(0, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, top-down, one run of two green pixels then one raw translucent white.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data, 0x81, 0, 255, 0, 255)
	data = append(data, 0x00, 255, 255, 255, 128)

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	rgba := img.(*image.RGBA)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, rgba.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 128}, rgba.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(TGATypeUncompressed, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 2, 2, 24, 0), 0x83)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeChannels(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	tex, err := Decode("bark.png", encodePNG(t, opaque))
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, 3, tex.Channels)
	require.NotNil(t, tex.Pixels)
	assert.Len(t, tex.Pixels.Pix, 4*2*4, "pixels are always expanded to RGBA")

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 100})
	tex, err = Decode("leaf.png", encodePNG(t, translucent))
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Channels)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode("notes.txt", []byte("not an image"))
	assert.Error(t, err)
}

func TestToRGBAOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{R: 1, A: 255})

	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, color.RGBA{R: 1, A: 255}, out.RGBAAt(0, 0))
}

func TestUploadReleasesPixels(t *testing.T) {
	dev := gputest.New()
	tex := &Texture{Name: "grass", Width: 1, Height: 1, Pixels: image.NewRGBA(image.Rect(0, 0, 1, 1))}

	require.ErrorIs(t, tex.Bind(dev, 0), ErrNotUploaded)

	require.NoError(t, tex.Upload(dev))
	assert.NotZero(t, tex.ID)
	assert.Nil(t, tex.Pixels)
	assert.Contains(t, dev.Textures, tex.ID)

	// second upload keeps the same handle
	id := tex.ID
	require.NoError(t, tex.Upload(dev))
	assert.Equal(t, id, tex.ID)

	require.NoError(t, tex.Bind(dev, 0))

	tex.Release(dev)
	assert.True(t, dev.Released(id))
	assert.Zero(t, tex.ID)
}

func TestUploadWithoutPixels(t *testing.T) {
	tex := &Texture{Name: "empty"}
	assert.Error(t, tex.Upload(gputest.New()))
}
