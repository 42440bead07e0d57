// Package importer turns glTF 2.0 documents into drawable models.
package importer

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/drawable"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/engine/shader"
	"github.com/fuel3d/fuel/internal/engine/texture"
	"github.com/fuel3d/fuel/internal/logger"
)

// ErrInvalidDocument is returned when a file is not a usable glTF document.
var ErrInvalidDocument = errors.New("invalid glTF document")

// Importer uploads imported geometry and textures to a device.
type Importer struct {
	dev     gfx.Device
	texOpts texture.Options
	log     *zap.Logger
}

// New returns an importer that uploads textures with texOpts.
func New(dev gfx.Device, texOpts texture.Options) *Importer {
	return &Importer{
		dev:     dev,
		texOpts: texOpts,
		log:     logger.Named("importer"),
	}
}

// FromFile opens a .gltf or .glb file and builds a model rendered with program.
// Relative image URIs resolve against the file's directory. The model takes
// ownership of program; on error the program is left to the caller.
func (im *Importer) FromFile(path string, program *shader.Program) (*drawable.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return im.FromDocument(doc, os.DirFS(filepath.Dir(path)), name, program)
}

// FromDocument builds a model from a decoded document. dir resolves relative
// image URIs and may be nil when the document has none.
//
// Every mesh becomes one engine mesh and every primitive one engine primitive.
// The model starts at the origin; callers position it afterwards.
func (im *Importer) FromDocument(doc *gltf.Document, dir fs.FS, name string, program *shader.Program) (*drawable.Model, error) {
	data, err := ReadMeshes(doc)
	if err != nil {
		return nil, err
	}

	// Decode every referenced image before touching the device.
	images := make(map[int]image.Image)
	for _, md := range data {
		for _, pd := range md.Primitives {
			src, ok := im.baseColorImage(doc, pd.Material)
			if !ok {
				continue
			}
			if _, done := images[src]; done {
				continue
			}
			img, err := im.decodeImage(doc, dir, src)
			if err != nil {
				return nil, err
			}
			images[src] = img
		}
	}

	textures := 0
	meshes := make([]*mesh.Mesh, 0, len(data))
	for _, md := range data {
		m := &mesh.Mesh{Name: md.Name}
		for _, pd := range md.Primitives {
			p := mesh.NewPrimitive(im.dev, pd.Vertices, pd.Indices)
			if src, ok := im.baseColorImage(doc, pd.Material); ok && images[src] != nil {
				p.Texture = texture.FromImage(im.dev, fmt.Sprintf("%s#image%d", name, src), images[src], im.texOpts)
				textures++
			}
			m.Primitives = append(m.Primitives, p)
		}
		meshes = append(meshes, m)
	}

	model := drawable.NewModel(im.dev, name, program, meshes)
	im.log.Info("model imported",
		zap.String("name", name),
		zap.Int("meshes", len(meshes)),
		zap.Int("primitives", model.PrimitiveCount()),
		zap.Int("textures", textures),
	)
	return model, nil
}
