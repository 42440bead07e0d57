package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fuelassets "github.com/fuel3d/fuel/assets"
	"github.com/fuel3d/fuel/internal/assets"
	"github.com/fuel3d/fuel/internal/config"
	"github.com/fuel3d/fuel/internal/engine/drawable"
	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/gfx/gfxtest"
	"github.com/fuel3d/fuel/internal/engine/input"
)

type fakeDisplay struct {
	events       input.Queue
	width        int
	height       int
	swaps        int
	hidden       bool
	title        string
	warpX, warpY int
}

func (d *fakeDisplay) Poll() (input.Event, bool) { return d.events.Poll() }
func (d *fakeDisplay) Size() (int, int) { return d.width, d.height }
func (d *fakeDisplay) SwapBuffers() { d.swaps++ }
func (d *fakeDisplay) HideCursor() { d.hidden = true }
func (d *fakeDisplay) SetTitle(title string) { d.title = title }

func (d *fakeDisplay) WarpCursor(x, y int) {
	d.warpX = x
	d.warpY = y
}

func embedded() *assets.Manager {
	m := assets.NewManager()
	m.AddFS(fuelassets.FS)
	return m
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Graphics.FPSLimit = 0
	cfg.Graphics.ScreenshotDir = t.TempDir()
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) (*App, *gfxtest.Device, *fakeDisplay) {
	t.Helper()
	dev := gfxtest.New()
	display := &fakeDisplay{width: 64, height: 48}
	a, err := New(cfg, dev, display, embedded())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, dev, display
}

func writeTriangle(t *testing.T, path string) {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Primitives: []*gltf.Primitive{
		{Attributes: map[string]int{gltf.POSITION: pos}},
	}})
	require.NoError(t, gltf.SaveBinary(doc, path))
}

func TestNewBuildsDefaultScene(t *testing.T) {
	a, dev, display := newApp(t, testConfig(t))

	assert.Equal(t, 6, a.Scene().Len())
	assert.Equal(t, 64, dev.ViewportW)
	assert.Equal(t, 48, dev.ViewportH)
	assert.True(t, display.hidden)
	assert.Equal(t, 32, display.warpX)
	assert.Equal(t, 24, display.warpY)

	w, h := a.Scene().Camera().Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)

	var polygons, lights int
	for _, id := range a.Scene().IDs() {
		d, err := a.Scene().Get(id)
		require.NoError(t, err)
		switch v := d.(type) {
		case *drawable.Polygon:
			polygons++
			require.NotNil(t, v.Texture())
			assert.Equal(t, 64, v.Texture().Width)
			assert.True(t, v.Program().Valid())
		case *drawable.Light:
			lights++
			assert.Equal(t, float32(0.2), v.Transform().Scale)
		}
	}
	assert.Equal(t, 5, polygons)
	assert.Equal(t, 1, lights)
}

func TestFrameDrawsAndPresents(t *testing.T) {
	a, dev, display := newApp(t, testConfig(t))

	require.NoError(t, a.Frame(0.016))

	assert.Len(t, dev.Clears, 1)
	assert.Len(t, dev.Draws, 6)
	assert.Equal(t, 1, display.swaps)

	ids := a.Scene().IDs()
	d, err := a.Scene().Get(ids[len(ids)-1])
	require.NoError(t, err)
	light := d.(*drawable.Light)
	v, ok := dev.Uniform(light.Program().Handle(), "lightColor")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, v)
}

func TestFrameStopsOnEscape(t *testing.T) {
	a, dev, display := newApp(t, testConfig(t))
	display.events = input.Queue{{Type: input.EventKeyDown, Key: input.KeyEscape}}

	require.NoError(t, a.Frame(0.016))

	assert.False(t, a.Control().Running())
	assert.Empty(t, dev.Draws)
	assert.Zero(t, display.swaps)
}

func TestRunReturnsWhenStopped(t *testing.T) {
	a, _, display := newApp(t, testConfig(t))
	display.events = input.Queue{{Type: input.EventQuit}}

	assert.NoError(t, a.Run())
	assert.False(t, a.Control().Running())
}

func TestReportFPSUpdatesTitle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Window.Title = "Viewer"
	a, _, display := newApp(t, cfg)

	a.reportFPS(58, 17*time.Millisecond)
	assert.Equal(t, "Viewer - 58 fps", display.title)
}

func TestFrameReturnsDeviceError(t *testing.T) {
	a, dev, display := newApp(t, testConfig(t))
	boom := errors.New("gl error 0x0502")
	dev.PendingErr = boom

	err := a.Frame(0.016)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, display.swaps)
}

func TestFrameTakesScreenshot(t *testing.T) {
	cfg := testConfig(t)
	a, _, display := newApp(t, cfg)
	display.events = input.Queue{{Type: input.EventKeyDown, Key: input.KeyF12}}

	require.NoError(t, a.Frame(0.016))

	files, err := filepath.Glob(filepath.Join(cfg.Graphics.ScreenshotDir, "fuel_*.png"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFramePolygonModeKey(t *testing.T) {
	a, dev, display := newApp(t, testConfig(t))
	display.events = input.Queue{{Type: input.EventKeyDown, Key: input.KeyP}}

	require.NoError(t, a.Frame(0.016))
	assert.Equal(t, gfx.PolygonLine, dev.PolygonMode)
	assert.Equal(t, gfx.PolygonLine, a.Scene().PolygonMode())
}

func TestNewMissingShaderReleasesScene(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{
		{Kind: config.KindLight, Scale: config.Scale(1)},
		{Kind: config.KindPolygon, Shader: "missing"},
	}

	dev := gfxtest.New()
	_, err := New(cfg, dev, &fakeDisplay{width: 8, height: 8}, embedded())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, dev.Live())
}

func TestNewMissingTextureReleasesProgram(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{
		{Kind: config.KindPolygon, Shader: "cube", Texture: "textures/absent.png"},
	}

	dev := gfxtest.New()
	_, err := New(cfg, dev, &fakeDisplay{width: 8, height: 8}, embedded())
	require.Error(t, err)
	assert.Zero(t, dev.Live())
}

func TestInvalidShaderStillBuilds(t *testing.T) {
	m := embedded()
	m.AddFS(fstest.MapFS{
		"shaders/broken.vs": {Data: []byte("#version 330 core\n")},
		"shaders/broken.fs": {Data: []byte("#version 330 core\nvoid main() {}\n")},
	})
	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{{Kind: config.KindPolygon, Shader: "broken"}}

	dev := gfxtest.New()
	a, err := New(cfg, dev, &fakeDisplay{width: 8, height: 8}, m)
	require.NoError(t, err)
	defer a.Close()

	d, err := a.Scene().Get(a.Scene().IDs()[0])
	require.NoError(t, err)
	assert.False(t, d.(*drawable.Polygon).Program().Valid())
}

func TestZeroScaleIsApplied(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{
		{Kind: config.KindPolygon, Shader: "cube", Scale: config.Scale(0)},
		{Kind: config.KindLight},
	}
	a, _, _ := newApp(t, cfg)

	ids := a.Scene().IDs()
	flat, err := a.Scene().Get(ids[0])
	require.NoError(t, err)
	assert.Zero(t, flat.(*drawable.Polygon).Transform().Scale)

	light, err := a.Scene().Get(ids[1])
	require.NoError(t, err)
	assert.Equal(t, float32(1), light.(*drawable.Light).Transform().Scale)
}

func TestModelFromAssetDir(t *testing.T) {
	dir := t.TempDir()
	writeTriangle(t, filepath.Join(dir, "tri.glb"))

	m := embedded()
	require.NoError(t, m.AddDir(dir))

	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{
		{Kind: config.KindModel, Path: "tri.glb", Position: [3]float32{1, 2, 3}},
	}

	dev := gfxtest.New()
	a, err := New(cfg, dev, &fakeDisplay{width: 8, height: 8}, m)
	require.NoError(t, err)
	defer a.Close()

	d, err := a.Scene().Get(a.Scene().IDs()[0])
	require.NoError(t, err)
	model := d.(*drawable.Model)
	assert.Equal(t, "tri", model.Name)
	assert.Equal(t, 1, model.PrimitiveCount())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, model.Transform().Position)
}

func TestModelAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	writeTriangle(t, path)

	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{{Kind: config.KindModel, Path: path}}

	a, _, _ := newApp(t, cfg)
	assert.Equal(t, 1, a.Scene().Len())
}

func TestModelMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Objects = []config.ObjectConfig{{Kind: config.KindModel, Path: "nowhere.glb"}}

	dev := gfxtest.New()
	_, err := New(cfg, dev, &fakeDisplay{width: 8, height: 8}, embedded())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, dev.Live())
}

func TestBuilderNearestFilter(t *testing.T) {
	dev := gfxtest.New()
	g := config.Default().Graphics
	g.TextureFilter = "nearest"

	b := NewBuilder(dev, embedded(), g)
	d, err := b.Object(config.ObjectConfig{Kind: config.KindPolygon, Shader: "cube", Texture: "textures/checker.png"})
	require.NoError(t, err)
	defer d.Release()

	tex := d.(*drawable.Polygon).Texture()
	params := dev.Textures[tex.Handle()].Params
	assert.Equal(t, gfx.FilterNearest, params.MinFilter)
	assert.Equal(t, gfx.FilterNearest, params.MagFilter)
	assert.False(t, params.Mipmaps)
}

func TestNewCamera(t *testing.T) {
	cfg := config.Default().Camera
	cfg.FOV = 60
	cfg.Position = [3]float32{1, 2, 3}

	cam := NewCamera(cfg, 100, 50)
	assert.Equal(t, float32(60), cam.FovY)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
	assert.Equal(t, float32(2), cam.Aspect())
}
