// Package texture decodes image assets and uploads them as GPU textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/disintegration/gift"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/logger"
)

// ErrUnsupportedFormat is returned for data that is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats recognised by content sniffing, keyed by filetype extension.
var decodable = map[string]bool{
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// Options control decoding and sampling.
type Options struct {
	Params gfx.TextureParams
	// FlipY stores the first image row at the bottom, matching GL's origin.
	FlipY bool
}

// DefaultOptions samples trilinearly and keeps rows in file order.
func DefaultOptions() Options {
	return Options{Params: gfx.DefaultTextureParams()}
}

// Decode turns encoded image bytes into an image. name is only used to pick
// the TGA decoder, which cannot be recognised by content.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	kind, err := filetype.Match(data)
	if err != nil || !decodable[kind.Extension] {
		return nil, fmt.Errorf("decoding %s: %w", name, ErrUnsupportedFormat)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// FlipVertical mirrors img top to bottom.
func FlipVertical(img image.Image) image.Image {
	g := gift.New(gift.FlipVertical())
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// RGB returns tightly packed 8-bit RGB rows of img, alpha discarded.
func RGB(img image.Image) []byte {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out
}

// Texture is a GPU-resident RGB8 texture.
type Texture struct {
	dev    gfx.Device
	handle gfx.Texture
	Name   string
	Width  int
	Height int
}

// Load reads and decodes name from fsys, then uploads it. Nothing is
// allocated on the device unless decoding succeeds.
func Load(dev gfx.Device, fsys fs.FS, name string, opts Options) (*Texture, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("loading texture: %w", err)
	}
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	return FromImage(dev, name, img, opts), nil
}

// FromImage uploads an already decoded image.
func FromImage(dev gfx.Device, name string, img image.Image, opts Options) *Texture {
	if opts.FlipY {
		img = FlipVertical(img)
	}
	b := img.Bounds()
	t := &Texture{
		dev:    dev,
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	t.handle = dev.CreateTexture(RGB(img), t.Width, t.Height, opts.Params)

	logger.Named("texture").Debug("texture uploaded",
		zap.String("name", name),
		zap.Int("width", t.Width),
		zap.Int("height", t.Height),
	)
	return t
}

// Handle returns the device texture, zero after Release.
func (t *Texture) Handle() gfx.Texture { return t.handle }

// Bind attaches the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	t.dev.BindTexture(unit, t.handle)
}

// Release deletes the GPU texture. It is safe to call more than once.
func (t *Texture) Release() {
	if t.handle != 0 {
		t.dev.DeleteTexture(t.handle)
		t.handle = 0
	}
}
