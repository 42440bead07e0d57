package importer

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"path"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/texture"
)

// Embedded image encodings glTF allows.
var embeddedMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// baseColorImage follows material -> base color texture -> image source.
func (im *Importer) baseColorImage(doc *gltf.Document, material *int) (int, bool) {
	if material == nil || *material < 0 || *material >= len(doc.Materials) {
		return 0, false
	}
	mat := doc.Materials[*material]
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorTexture == nil {
		return 0, false
	}
	ti := mat.PBRMetallicRoughness.BaseColorTexture.Index
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti] == nil || doc.Textures[ti].Source == nil {
		return 0, false
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) || doc.Images[src] == nil {
		return 0, false
	}
	return src, true
}

// decodeImage returns nil without error for encodings that cannot be decoded.
// A referenced file that cannot be read is an error.
func (im *Importer) decodeImage(doc *gltf.Document, dir fs.FS, idx int) (image.Image, error) {
	img := doc.Images[idx]
	log := im.log.With(zap.Int("image", idx))

	var (
		name string
		data []byte
		err  error
	)
	switch {
	case img.BufferView != nil:
		ext, ok := embeddedMime[img.MimeType]
		if !ok {
			log.Warn("unsupported embedded image encoding, skipping", zap.String("mime", img.MimeType))
			return nil, nil
		}
		if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("%w: image %d buffer view out of range", ErrInvalidDocument, idx)
		}
		name = fmt.Sprintf("image%d%s", idx, ext)
		data, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", ErrInvalidDocument, idx, err)
		}

	case img.IsEmbeddedResource():
		name = fmt.Sprintf("image%d", idx)
		data, err = img.MarshalData()
		if err != nil {
			log.Warn("undecodable data URI, skipping", zap.Error(err))
			return nil, nil
		}

	case img.URI != "":
		if dir == nil {
			log.Warn("external image without a base directory, skipping", zap.String("uri", img.URI))
			return nil, nil
		}
		name, err = url.PathUnescape(img.URI)
		if err != nil {
			name = img.URI
		}
		name = path.Clean(name)
		data, err = fs.ReadFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("loading model texture %s: %w", name, err)
		}

	default:
		log.Warn("image has no source, skipping")
		return nil, nil
	}

	decoded, err := texture.Decode(name, data)
	if errors.Is(err, texture.ErrUnsupportedFormat) {
		log.Warn("unsupported image encoding, skipping", zap.String("name", name))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
