package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes a TGA image.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// images at 24 or 32 bits per pixel. Rows are returned top row first
// regardless of the stored orientation.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		bytesPerPix: bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = r.readRaw(width * height)
	} else {
		err = r.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	img         *image.RGBA
	data        []byte
	pos         int
	pixel       int
	bytesPerPix int
	topToBottom bool
}

// next reads one BGR(A) pixel from the stream.
func (r *tgaReader) next() (color.RGBA, error) {
	if r.pos+r.bytesPerPix > len(r.data) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.data[r.pos : r.pos+r.bytesPerPix]
	r.pos += r.bytesPerPix
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bytesPerPix == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel position, mapping bottom-up storage to
// top-down image rows.
func (r *tgaReader) put(c color.RGBA) {
	b := r.img.Bounds()
	x := r.pixel % b.Dx()
	y := r.pixel / b.Dx()
	if !r.topToBottom {
		y = b.Dy() - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) readRaw(count int) error {
	for i := 0; i < count; i++ {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

func (r *tgaReader) readRLE() error {
	total := r.img.Bounds().Dx() * r.img.Bounds().Dy()
	for r.pixel < total {
		if r.pos >= len(r.data) {
			return errTGATruncated
		}
		packet := r.data[r.pos]
		r.pos++
		count := min(int(packet&0x7F)+1, total-r.pixel)

		if packet&0x80 == 0 {
			if err := r.readRaw(count); err != nil {
				return err
			}
			continue
		}
		c, err := r.next()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			r.put(c)
		}
	}
	return nil
}
