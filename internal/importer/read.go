package importer

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/logger"
)

const texcoordPrefix = "TEXCOORD_"

// MeshData is the CPU side of one glTF mesh.
type MeshData struct {
	Name       string
	Primitives []PrimitiveData
}

// PrimitiveData is the CPU side of one glTF primitive.
type PrimitiveData struct {
	Vertices []mesh.Vertex
	Indices  []uint32 // nil when the primitive is not indexed
	Material *int
}

// ReadMeshes extracts positions, texture coordinates and indices from every
// primitive of every mesh. Normals are not read; vertices keep the placeholder.
// A primitive without positions yields no vertices. Texture coordinate sets
// above 1 are skipped with a warning, as are primitives whose indices address
// vertices that do not exist.
func ReadMeshes(doc *gltf.Document) ([]MeshData, error) {
	log := logger.Named("importer")

	meshes := make([]MeshData, 0, len(doc.Meshes))
	for mi, m := range doc.Meshes {
		md := MeshData{Name: m.Name}
		for pi, prim := range m.Primitives {
			plog := log.With(zap.Int("mesh", mi), zap.Int("primitive", pi))
			pd, err := readPrimitive(doc, prim, plog)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if i, ok := indexOutOfRange(pd.Indices, len(pd.Vertices)); ok {
				plog.Warn("index out of vertex range, skipping primitive",
					zap.Uint32("index", i),
					zap.Int("vertices", len(pd.Vertices)),
				)
				continue
			}
			md.Primitives = append(md.Primitives, pd)
		}
		meshes = append(meshes, md)
	}
	return meshes, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive, log *zap.Logger) (PrimitiveData, error) {
	pd := PrimitiveData{Material: prim.Material}

	if idx, ok := prim.Attributes[gltf.POSITION]; ok {
		acc, err := accessor(doc, idx)
		if err != nil {
			return pd, err
		}
		positions, err := modeler.ReadPosition(doc, acc, nil)
		if err != nil {
			return pd, fmt.Errorf("%w: positions: %v", ErrInvalidDocument, err)
		}
		pd.Vertices = make([]mesh.Vertex, len(positions))
		for i, p := range positions {
			pd.Vertices[i] = mesh.NewVertex(mgl32.Vec3(p))
		}
	}

	for _, set := range texcoordSets(prim) {
		if set.channel > 1 {
			log.Warn("texture coordinate set not supported, skipping", zap.Int("channel", set.channel))
			continue
		}
		acc, err := accessor(doc, set.accessor)
		if err != nil {
			return pd, err
		}
		coords, err := modeler.ReadTextureCoord(doc, acc, nil)
		if err != nil {
			return pd, fmt.Errorf("%w: %s%d: %v", ErrInvalidDocument, texcoordPrefix, set.channel, err)
		}
		for i := 0; i < len(coords) && i < len(pd.Vertices); i++ {
			if set.channel == 0 {
				pd.Vertices[i].UV0 = mgl32.Vec2(coords[i])
			} else {
				pd.Vertices[i].UV1 = mgl32.Vec2(coords[i])
			}
		}
	}

	if prim.Indices != nil {
		acc, err := accessor(doc, *prim.Indices)
		if err != nil {
			return pd, err
		}
		indices, err := modeler.ReadIndices(doc, acc, nil)
		if err != nil {
			return pd, fmt.Errorf("%w: indices: %v", ErrInvalidDocument, err)
		}
		if indices == nil {
			indices = []uint32{}
		}
		pd.Indices = indices
	}

	return pd, nil
}

// indexOutOfRange returns the first index that is not below n.
func indexOutOfRange(indices []uint32, n int) (uint32, bool) {
	for _, i := range indices {
		if int(i) >= n {
			return i, true
		}
	}
	return 0, false
}

type texcoordSet struct {
	channel  int
	accessor int
}

// texcoordSets lists TEXCOORD_n attributes ordered by n.
func texcoordSets(prim *gltf.Primitive) []texcoordSet {
	var sets []texcoordSet
	for name, idx := range prim.Attributes {
		if !strings.HasPrefix(name, texcoordPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, texcoordPrefix))
		if err != nil || n < 0 {
			continue
		}
		sets = append(sets, texcoordSet{channel: n, accessor: idx})
	}
	slices.SortFunc(sets, func(a, b texcoordSet) int { return cmp.Compare(a.channel, b.channel) })
	return sets
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrInvalidDocument, idx)
	}
	return doc.Accessors[idx], nil
}
