// Command voxsimview is a minimal live viewer for a voxsim.Engine: it
// opens a window, steps the simulation once per frame, and clears the
// frame to a color derived from the live-particle fraction. It does not
// implement a geometry/voxel rendering pipeline; render.BrickMap exists
// for a future renderer to consume, but drawing actual particles is out
// of scope here (see SPEC_FULL.md's Non-goals).
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/voxsim"
	"github.com/gekko3d/voxsim/config"
	"github.com/gekko3d/voxsim/elements"
	"github.com/gekko3d/voxsim/render"
)

// PT_SAND, PT_PHOTON and PT_GOL are this command's own element ids into
// the table built in main, distinct from the package-level PT_NONE=0
// every ElementTable reserves.
const (
	PT_SAND uint32 = iota + 1
	PT_PHOTON
	PT_GOL
)

type gpuState struct {
	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
}

func createWindow(width, height int, title string) *glfw.Window {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		log.Fatalf("glfw create window: %v", err)
	}
	return win
}

func createGPUState(win *glfw.Window, width, height int) *gpuState {
	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		log.Fatalf("request adapter: %v", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "voxsimview device"})
	if err != nil {
		log.Fatalf("request device: %v", err)
	}
	queue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, surfaceConfig)

	return &gpuState{
		instance:      instance,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: surfaceConfig,
	}
}

// seedDemoScene drops a small sand pile near the top of the grid, a
// scattering of Game of Life cells at its base, and one photon aimed
// across the grid, so the default viewer has something falling, living
// and bouncing to look at instead of an empty volume.
func seedDemoScene(e *voxsim.Engine, bounds voxsim.GridBounds) {
	cx, cy := bounds.XRes/2, bounds.YRes/2
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if _, err := e.CreatePart(PT_SAND, cx+dx, cy+dy, bounds.ZRes-2); err != nil {
				e.Logger.Warnf("seedDemoScene: sand at (%d,%d,%d): %v", cx+dx, cy+dy, bounds.ZRes-2, err)
			}
		}
	}

	for _, off := range [][3]int{{0, 1, 0}, {1, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {1, 1, 0}} {
		if _, err := e.CreatePart(PT_GOL, cx+off[0], cy+off[1], 1); err != nil {
			e.Logger.Warnf("seedDemoScene: gol cell at offset %v: %v", off, err)
		}
	}

	if id, err := e.CreatePart(PT_PHOTON, 1, cy, bounds.ZRes/2); err == nil {
		p := &e.Energy.Parts[id]
		p.VX = 10
	} else {
		e.Logger.Warnf("seedDemoScene: photon: %v", err)
	}
}

func main() {
	configPath := flag.String("config", "", "path to an EngineConfig YAML file")
	flag.Parse()

	cfg := config.DefaultEngineConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	bounds := voxsim.GridBounds{XRes: cfg.XRes, YRes: cfg.YRes, ZRes: cfg.ZRes}
	table := voxsim.ElementTable{
		{}, // index 0 reserved for PT_NONE
		{Name: "sand", State: voxsim.Powder, Weight: 100, Enabled: true, Gravity: 1.0, Loss: 1.0, Color: 0xC2B280FF},
		elements.Photon(),
		elements.GameOfLife(PT_GOL),
	}
	swap := voxsim.BuildSwapMatrix(table)
	engine := voxsim.NewEngine(bounds, table, swap)
	engine.Debug = cfg.Debug
	engine.Logger = voxsim.NewDefaultLogger()
	seedDemoScene(engine, bounds)

	viewer := render.NewViewer(bounds)
	brickMap := render.NewBrickMap()
	var prevMatter, prevEnergy map[[3]int]uint8

	win := createWindow(1280, 720, "voxsimview")
	defer glfw.Terminate()

	gpu := createGPUState(win, 1280, 720)
	defer gpu.queue.Release()
	defer gpu.device.Release()
	defer gpu.surface.Release()
	defer gpu.instance.Release()

	for !win.ShouldClose() {
		glfw.PollEvents()

		engine.Update(runtime.GOMAXPROCS(0))
		prevMatter, prevEnergy = brickMap.SyncFromEngine(engine, prevMatter, prevEnergy)

		if engine.FrameCount%120 == 0 {
			engine.Logger.Debugf("viewer eye=%v parts=%d", viewer.Eye(), engine.PartsCount())
		}

		drawFrame(gpu, engine, viewer)
	}
}

// drawFrame renders a single clear-color pass whose color encodes the
// live-particle fraction of the grid: brighter means fuller. A real
// rasterization/raymarch pass over brickMap would replace this once one
// exists; viewer is already threaded through so that pass has a camera
// to read from.
func drawFrame(gpu *gpuState, engine *voxsim.Engine, viewer *render.Viewer) {
	texture, err := gpu.surface.GetCurrentTexture()
	if err != nil {
		log.Printf("get current texture: %v", err)
		return
	}
	defer texture.Release()

	view, err := texture.CreateView(nil)
	if err != nil {
		log.Printf("create view: %v", err)
		return
	}
	defer view.Release()

	fraction := float64(engine.PartsCount()) / float64(engine.Bounds.NumCells())
	if fraction > 1 {
		fraction = 1
	}

	encoder, err := gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		log.Printf("create command encoder: %v", err)
		return
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{fraction * 0.2, fraction * 0.6, fraction, 1},
			},
		},
	})
	if err := pass.End(); err != nil {
		log.Printf("end render pass: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		log.Printf("finish encoder: %v", err)
		return
	}

	gpu.queue.Submit(cmd)
	gpu.surface.Present()
}
