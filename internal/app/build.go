package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/assets"
	"github.com/fuel3d/fuel/internal/config"
	"github.com/fuel3d/fuel/internal/engine/camera"
	"github.com/fuel3d/fuel/internal/engine/drawable"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/engine/scene"
	"github.com/fuel3d/fuel/internal/engine/shader"
	"github.com/fuel3d/fuel/internal/engine/texture"
	"github.com/fuel3d/fuel/internal/importer"
	"github.com/fuel3d/fuel/internal/logger"
)

// ModelShader is the program imported models are rendered with.
const ModelShader = "model"

const shaderDir = "shaders/"

// Builder turns config objects into drawables. Shader and texture names
// resolve through the asset manager; model paths resolve on disk first.
type Builder struct {
	dev      gfx.Device
	assets   *assets.Manager
	texOpts  texture.Options
	importer *importer.Importer
	log      *zap.Logger
}

// NewBuilder creates a builder sampling textures with the configured filter.
func NewBuilder(dev gfx.Device, manager *assets.Manager, g config.GraphicsConfig) *Builder {
	opts := texture.DefaultOptions()
	opts.Params.MinFilter = gfx.ParseFilter(g.TextureFilter)
	if opts.Params.MinFilter == gfx.FilterNearest {
		opts.Params.MagFilter = gfx.FilterNearest
		opts.Params.Mipmaps = false
	}
	opts.FlipY = g.FlipTextures

	return &Builder{
		dev:      dev,
		assets:   manager,
		texOpts:  opts,
		importer: importer.New(dev, opts),
		log:      logger.Named("app"),
	}
}

// NewCamera creates a first-person camera from cfg looking down -Z.
func NewCamera(cfg config.CameraConfig, width, height int) *camera.FirstPerson {
	cam := camera.NewFirstPerson(width, height)
	cam.FovY = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.Speed = cfg.Speed
	cam.Sensitivity = cfg.Sensitivity
	cam.Position = mgl32.Vec3(cfg.Position)
	return cam
}

// Populate adds every configured object to s in order. On error the objects
// added so far stay in the scene and are released with it.
func (b *Builder) Populate(s *scene.Scene, objects []config.ObjectConfig) error {
	for i, obj := range objects {
		d, err := b.Object(obj)
		if err != nil {
			return fmt.Errorf("scene object %d (%s): %w", i, obj.Kind, err)
		}
		id := s.Add(d)
		b.log.Debug("object added",
			zap.Stringer("id", id),
			zap.Stringer("kind", d.Kind()),
			zap.Float32s("position", obj.Position[:]),
		)
	}
	return nil
}

// Object builds a single drawable and applies its transform and colors.
func (b *Builder) Object(obj config.ObjectConfig) (drawable.Drawable, error) {
	var d drawable.Drawable
	var err error

	switch obj.Kind {
	case config.KindPolygon:
		d, err = b.polygon(obj)
	case config.KindLight:
		d, err = b.light(obj)
	case config.KindModel:
		d, err = b.model(obj)
	default:
		err = fmt.Errorf("unknown kind %q", obj.Kind)
	}
	if err != nil {
		return nil, err
	}

	d.SetPosition(obj.Position[0], obj.Position[1], obj.Position[2])
	if obj.Scale != nil {
		d.SetScale(*obj.Scale)
	}
	for name, rgb := range obj.Colors {
		d.SetColor(name, mgl32.Vec3(rgb))
	}
	return d, nil
}

func (b *Builder) program(name string) (*shader.Program, error) {
	p, err := shader.LoadFiles(b.dev, b.assets, shaderDir+name)
	if err != nil {
		return nil, err
	}
	if !p.Valid() {
		b.log.Warn("rendering with invalid shader program", zap.String("shader", name))
	}
	return p, nil
}

func (b *Builder) polygon(obj config.ObjectConfig) (drawable.Drawable, error) {
	program, err := b.program(obj.Shader)
	if err != nil {
		return nil, err
	}

	var tex *texture.Texture
	if obj.Texture != "" {
		tex, err = texture.Load(b.dev, b.assets, obj.Texture, b.texOpts)
		if err != nil {
			program.Release()
			return nil, err
		}
	}

	p := drawable.NewPolygon(b.dev, mesh.CubeVertices(), mesh.CubeLayout, program, tex)
	p.SetRotation(obj.Rotation[0], obj.Rotation[1], obj.Rotation[2])
	return p, nil
}

func (b *Builder) light(obj config.ObjectConfig) (drawable.Drawable, error) {
	name := obj.Shader
	if name == "" {
		name = drawable.LightShader
	}
	program, err := b.program(name)
	if err != nil {
		return nil, err
	}
	return drawable.NewLight(b.dev, program), nil
}

func (b *Builder) model(obj config.ObjectConfig) (drawable.Drawable, error) {
	path, err := b.locate(obj.Path)
	if err != nil {
		return nil, err
	}

	name := obj.Shader
	if name == "" {
		name = ModelShader
	}
	program, err := b.program(name)
	if err != nil {
		return nil, err
	}

	m, err := b.importer.FromFile(path, program)
	if err != nil {
		program.Release()
		return nil, err
	}
	return m, nil
}

// locate prefers a path that exists as given, then the asset directory layers.
func (b *Builder) locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	if !filepath.IsAbs(name) {
		if p, ok := b.assets.Locate(filepath.ToSlash(name)); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("model %s: %w", name, os.ErrNotExist)
}
