// Package scene owns the drawables and the camera and renders them each frame.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/camera"
	"github.com/fuel3d/fuel/internal/engine/drawable"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/logger"
)

// ErrNotFound is returned for identifiers that were never issued or were removed.
var ErrNotFound = errors.New("scene object not found")

// Scene owns a set of drawables keyed by random identifiers. Drawables render
// in insertion order.
type Scene struct {
	dev    gfx.Device
	camera *camera.FirstPerson

	objects map[uuid.UUID]drawable.Drawable
	order   []uuid.UUID
	retired map[uuid.UUID]struct{}

	ClearColor  mgl32.Vec4
	polygonMode gfx.PolygonMode

	log *zap.Logger
}

// New returns an empty scene viewed through cam.
func New(dev gfx.Device, cam *camera.FirstPerson) *Scene {
	return &Scene{
		dev:        dev,
		camera:     cam,
		objects:    make(map[uuid.UUID]drawable.Drawable),
		retired:    make(map[uuid.UUID]struct{}),
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
		log:        logger.Named("scene"),
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.FirstPerson { return s.camera }

// Add takes ownership of d and returns its new identifier.
func (s *Scene) Add(d drawable.Drawable) uuid.UUID {
	id := uuid.New()
	for s.taken(id) {
		id = uuid.New()
	}
	s.objects[id] = d
	s.order = append(s.order, id)

	s.log.Debug("object added", zap.Stringer("id", id), zap.Stringer("kind", d.Kind()))
	return id
}

// taken reports whether id is live or was live before.
func (s *Scene) taken(id uuid.UUID) bool {
	if _, ok := s.objects[id]; ok {
		return true
	}
	_, ok := s.retired[id]
	return ok
}

// Get returns the drawable stored under id.
func (s *Scene) Get(id uuid.UUID) (drawable.Drawable, error) {
	d, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return d, nil
}

// Remove releases the drawable stored under id. The id is never issued again.
func (s *Scene) Remove(id uuid.UUID) error {
	d, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d.Release()
	delete(s.objects, id)
	s.retired[id] = struct{}{}
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of live drawables.
func (s *Scene) Len() int { return len(s.order) }

// IDs returns the live identifiers in render order.
func (s *Scene) IDs() []uuid.UUID {
	return append([]uuid.UUID(nil), s.order...)
}

// SetPolygonMode switches how triangles are rasterized.
func (s *Scene) SetPolygonMode(mode gfx.PolygonMode) {
	s.polygonMode = mode
	s.dev.SetPolygonMode(mode)
}

// PolygonMode returns the current rasterization mode.
func (s *Scene) PolygonMode() gfx.PolygonMode { return s.polygonMode }

// Render clears color and depth, then draws every drawable with the
// camera's projection and view.
func (s *Scene) Render() {
	s.RenderWith(s.camera.Projection(), s.camera.View())
}

// RenderWith clears color and depth, then draws every drawable in insertion
// order with the given matrices instead of the camera's.
func (s *Scene) RenderWith(projection, view mgl32.Mat4) {
	s.dev.Clear(s.ClearColor)
	for _, id := range s.order {
		s.objects[id].Render(projection, view)
	}
}

// Release frees every drawable and empties the scene.
func (s *Scene) Release() {
	for _, id := range s.order {
		s.objects[id].Release()
		s.retired[id] = struct{}{}
	}
	s.objects = make(map[uuid.UUID]drawable.Drawable)
	s.order = nil
}
