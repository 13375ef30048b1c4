package viewer

import (
	"fmt"
	"math"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"solarsystem/config"
	"solarsystem/core"
	"solarsystem/texture"
)

const sphereSegments = 32

// Viewer renders a SolarSystem in a native window
type Viewer struct {
	system   *core.SolarSystem
	settings config.ViewerSettings
	stepper  *core.FrameStepper

	models   map[string]rl.Model
	textures map[string]rl.Texture2D
	colors   map[string]rl.Color
	hover    string

	// OnFocus runs after the camera starts flying to a body
	OnFocus func(*core.Body)
}

// New prepares a viewer; the window opens in Run
func New(system *core.SolarSystem, settings config.ViewerSettings) *Viewer {
	return &Viewer{
		system:   system,
		settings: settings,
		stepper:  core.NewFrameStepper(60, 30),
		models:   make(map[string]rl.Model),
		textures: make(map[string]rl.Texture2D),
		colors:   make(map[string]rl.Color),
	}
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	rl.InitWindow(int32(v.settings.Width), int32(v.settings.Height), "Solar System")
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("window could not be created")
	}
	rl.SetTargetFPS(int32(v.settings.TargetFPS))

	// Models need the GL context that InitWindow creates
	v.load()
	defer v.unload()

	fmt.Printf("Viewer running: keys 0-%d focus bodies, click to pick\n", len(v.system.Bodies)-1)
	for !rl.WindowShouldClose() {
		v.handleInput()

		elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		for n := v.stepper.Advance(elapsed); n > 0; n-- {
			v.system.Step()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		v.drawScene()
		v.drawHUD()
		rl.EndDrawing()
	}
	return nil
}

// load uploads every body texture and builds its sphere
func (v *Viewer) load() {
	for _, b := range v.system.Bodies {
		img := rl.NewImageFromImage(b.Texture.Image())
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)

		mesh := rl.GenMeshSphere(float32(b.Radius), sphereSegments, sphereSegments)
		model := rl.LoadModelFromMesh(mesh)
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)

		v.textures[b.Name] = tex
		v.models[b.Name] = model
		v.colors[b.Name] = toColor(b.Surface.Low, 255)
	}
}

func (v *Viewer) unload() {
	for name, model := range v.models {
		rl.UnloadModel(model)
		rl.UnloadTexture(v.textures[name])
	}
}

func (v *Viewer) handleInput() {
	for i := range v.system.Bodies {
		if i > 9 {
			break
		}
		if rl.IsKeyPressed(int32(rl.KeyZero) + int32(i)) {
			v.focus(v.system.Bodies[i])
		}
	}

	mouse := rl.GetMousePosition()
	ray := v.system.Camera.ScreenRay(float64(mouse.X), float64(mouse.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	b, point := v.system.Pick(ray)
	v.hover = hoverText(b, point)

	if b != nil && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		v.focus(b)
	}
}

// hoverText describes the surface under the cursor
func hoverText(b *core.Body, point mgl64.Vec3) string {
	if b == nil {
		return ""
	}
	r, g, bl, ok := b.SurfaceColor(point)
	if !ok {
		return b.Name
	}
	geo := core.ToGeographic(b.Local(point))
	return fmt.Sprintf("%s  lat %.1f lon %.1f  #%02x%02x%02x",
		b.Name, mgl64.RadToDeg(geo.Lat), mgl64.RadToDeg(geo.Lon), r, g, bl)
}

func (v *Viewer) focus(b *core.Body) {
	if _, err := v.system.FocusOn(b.Name); err != nil {
		fmt.Printf("Focus failed: %v\n", err)
		return
	}
	if v.OnFocus != nil {
		v.OnFocus(b)
	}
}

func (v *Viewer) camera() rl.Camera3D {
	cam := v.system.Camera
	return rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         vec3(core.Up),
		Fovy:       float32(cam.Fov),
		Projection: rl.CameraPerspective,
	}
}

func (v *Viewer) drawScene() {
	rl.BeginMode3D(v.camera())
	defer rl.EndMode3D()

	v.drawParticles()

	orbitColor := rl.NewColor(255, 255, 255, 25)
	for _, b := range v.system.Bodies {
		if b.Distance > 0 {
			// DrawCircle3D lies in XY; tip it onto the ecliptic
			rl.DrawCircle3D(rl.Vector3{}, float32(b.Distance), rl.NewVector3(1, 0, 0), 90, orbitColor)
		}
	}

	for _, b := range v.system.Bodies {
		pos := vec3(b.Position)
		spin := float32(mgl64.RadToDeg(b.Spin))
		rl.DrawModelEx(v.models[b.Name], pos, rl.NewVector3(0, 1, 0), spin, rl.NewVector3(1, 1, 1), rl.White)

		if b.Atmosphere {
			glow := toColor(b.Surface.Low, uint8(core.AtmosphereOpacity*255))
			rl.DrawSphere(pos, float32(b.Radius*core.AtmosphereScale), glow)
		}
		if b.Ring {
			v.drawRing(b)
		}
	}
}

// drawRing approximates the flat ring band with concentric circles
func (v *Viewer) drawRing(b *core.Body) {
	const bands = 12
	color := toColor(b.Surface.High, uint8(core.RingOpacity*255))
	tilt := float32(mgl64.RadToDeg(core.RingTilt))
	for i := 0; i <= bands; i++ {
		scale := core.RingInner + (core.RingOuter-core.RingInner)*float64(i)/bands
		rl.DrawCircle3D(vec3(b.Position), float32(b.Radius*scale), rl.NewVector3(1, 0, 0), tilt, color)
	}
}

func (v *Viewer) drawParticles() {
	field := v.system.Particles
	sin, cos := math.Sincos(field.Rotation)
	for _, p := range field.Particles {
		// Rotate about Y
		x := p.Position.X()*cos + p.Position.Z()*sin
		z := -p.Position.X()*sin + p.Position.Z()*cos
		rl.DrawPoint3D(rl.NewVector3(float32(x), float32(p.Position.Y()), float32(z)), toColor(p.Color, 200))
	}
}

func (v *Viewer) drawHUD() {
	rl.DrawFPS(10, 10)

	var keys strings.Builder
	for i, b := range v.system.Bodies {
		fmt.Fprintf(&keys, "%d:%s  ", i, b.Name)
	}
	rl.DrawText(keys.String(), 10, int32(rl.GetScreenHeight()-24), 16, rl.LightGray)
	if v.hover != "" {
		rl.DrawText(v.hover, 10, int32(rl.GetScreenHeight()-48), 16, rl.RayWhite)
	}

	b := v.system.Camera.Following()
	if b == nil {
		return
	}
	// The default font is ASCII only
	lines := []string{
		strings.ToUpper(b.Name),
		"Type: " + b.Type.String(),
		"Diameter: " + b.Info.Diameter,
		"Orbit: " + asciiOnly(b.Info.Orbit),
		"Temperature: " + asciiOnly(b.Info.Temperature),
	}
	for i, line := range lines {
		size := int32(18)
		if i == 0 {
			size = 28
		}
		rl.DrawText(line, 10, int32(40+i*30), size, v.colors[b.Name])
	}
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, s)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func toColor(c texture.Color, alpha uint8) rl.Color {
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, alpha)
}
