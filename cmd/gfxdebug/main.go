// Command gfxdebug runs a scripted frame loop through the validating debug
// layer and prints the reports and per-frame call counts.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/noop"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	_ "github.com/gogpu/gfx/backend/native"
	"github.com/gogpu/gfx/debug"
	"github.com/gogpu/gfx/internal/capture"
	"github.com/gogpu/gfx/profile"
	"github.com/gogpu/gfx/render"
)

const (
	frameWidth  = 640
	frameHeight = 480
)

const triangleWGSL = `
@vertex
fn main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 0.0, 1.0);
}
`

func main() {
	configPath := flag.String("config", "", "TOML file with scenario settings")
	flag.String("backend", backend.Noop, "backend to open, or \"auto\" for the best available")
	flag.Int("frames", 3, "number of frames to record")
	flag.Bool("mistakes", true, "record invalid calls to demonstrate reports")
	flag.Bool("v", false, "log backend and debug layer activity")
	flag.String("color", "auto", "color report output (auto, always, never)")
	flag.String("capture", "", "save the last frame to a .png or .bmp file")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Fatal(err)
		}
	}
	if err := applyFlags(flag.CommandLine, &cfg); err != nil {
		log.Fatal(err)
	}
	ignore, err := cfg.ignored()
	if err != nil {
		log.Fatal(err)
	}

	var rec debug.Recorder
	var sink debug.Debugger = &rec
	if cfg.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		gfx.SetLogger(logger)
		logged := debug.NewLogDebugger(logger)
		sink = debug.DebuggerFunc(func(rp debug.Report) {
			rec.Post(rp)
			logged.Post(rp)
		})
	}

	sys, opened, err := open(cfg.Backend)
	if err != nil {
		log.Fatalf("open %s backend: %v (available: %v)", cfg.Backend, err, backend.Available())
	}
	if c, ok := sys.(io.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				log.Printf("close %s: %v", opened, err)
			}
		}()
	}

	counters := profile.New()
	r := debug.New(sys,
		debug.WithDebugger(debug.Filter(sink, ignore...)),
		debug.WithProfiler(counters),
	)

	out := newPrinter(os.Stdout, cfg.Color)
	info := r.RendererInfo()
	out.Printf("renderer: %s (%s) via %s backend\n", info.RendererName, info.DeviceName, opened)

	if err := run(r, counters, out, &cfg); err != nil {
		log.Fatal(err)
	}

	out.Reports(&rec)
}

func open(name string) (render.System, string, error) {
	if name == "auto" {
		return backend.OpenDefault()
	}
	sys, err := backend.Open(name)
	return sys, name, err
}

func run(r *debug.RenderSystem, counters *profile.Counters, out *printer, cfg *config) error {
	ctx, err := r.CreateRenderContext(&render.RenderContextDescriptor{Label: "main", Width: frameWidth, Height: frameHeight})
	if err != nil {
		return fmt.Errorf("create render context: %w", err)
	}
	defer func() { _ = r.ReleaseRenderContext(ctx) }()

	var vf render.VertexFormat
	vf.AppendAttribute(gputypes.VertexFormatFloat32x2, 0)
	vertices := make([]byte, 3*vf.Stride)
	vb, err := r.CreateBuffer(&render.BufferDescriptor{
		Label:        "triangle",
		Type:         render.BufferTypeVertex,
		Size:         uint64(len(vertices)),
		VertexFormat: vf,
	}, vertices)
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	defer func() { _ = r.ReleaseBuffer(vb) }()

	vs, err := r.CreateShader(&render.ShaderDescriptor{Label: "triangle", Type: render.ShaderTypeVertex, Source: triangleWGSL})
	if err != nil {
		return fmt.Errorf("create vertex shader: %w", err)
	}
	defer func() { _ = r.ReleaseShader(vs) }()

	prog, err := r.CreateShaderProgram(&render.ShaderProgramDescriptor{Vertex: vs, VertexFormats: []render.VertexFormat{vf}})
	if err != nil {
		return fmt.Errorf("create shader program: %w", err)
	}
	defer func() { _ = r.ReleaseShaderProgram(prog) }()

	var target render.RenderTarget = ctx
	var frame render.Texture
	if cfg.Capture != "" {
		frame, err = r.CreateTexture(&render.TextureDescriptor{
			Label:  "frame",
			Type:   render.Texture2D,
			Format: gputypes.TextureFormatRGBA8Unorm,
			Usage:  gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
			Width:  frameWidth,
			Height: frameHeight,
		}, nil)
		if err != nil {
			return fmt.Errorf("create capture texture: %w", err)
		}
		defer func() { _ = r.ReleaseTexture(frame) }()

		offscreen, err := r.CreateRenderTarget(&render.RenderTargetDescriptor{
			Label:       "capture",
			Width:       frameWidth,
			Height:      frameHeight,
			Attachments: []render.AttachmentDescriptor{{Type: render.AttachmentColor, Texture: frame}},
		})
		if err != nil {
			return fmt.Errorf("create capture target: %w", err)
		}
		defer func() { _ = r.ReleaseRenderTarget(offscreen) }()
		target = offscreen
	}

	pipeline, err := r.CreateGraphicsPipeline(&render.GraphicsPipelineDescriptor{Label: "triangle", ShaderProgram: prog, RenderTarget: target})
	if err != nil {
		return fmt.Errorf("create graphics pipeline: %w", err)
	}
	defer func() { _ = r.ReleaseGraphicsPipeline(pipeline) }()

	cb, err := r.CreateCommandBuffer()
	if err != nil {
		return fmt.Errorf("create command buffer: %w", err)
	}
	defer func() { _ = r.ReleaseCommandBuffer(cb) }()

	fence, err := r.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer func() { _ = r.ReleaseFence(fence) }()

	if cfg.Mistakes {
		// Reported and forwarded: the write runs past the end of the buffer.
		_ = r.WriteBuffer(vb, make([]byte, 8), uint64(len(vertices)))
		// Reported: cube faces must be square.
		if tex, err := r.CreateTexture(&render.TextureDescriptor{Type: render.TextureCube, Width: 16, Height: 32}, nil); err == nil {
			_ = r.ReleaseTexture(tex)
		}
	}

	queue := r.CommandQueue()
	for i := 0; i < cfg.Frames; i++ {
		cb.Begin()
		cb.SetClearColor(gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1})
		cb.SetViewport(render.Viewport{Width: frameWidth, Height: frameHeight, MaxDepth: 1})
		cb.SetGraphicsPipeline(pipeline)
		cb.SetVertexBuffer(vb)
		cb.BeginRenderPass(target)
		cb.Draw(3, 0)
		if cfg.Mistakes && i == 0 {
			// Reported: 4 vertices starting at 2 exceed the 3 in the buffer.
			cb.Draw(4, 2)
		}
		cb.EndRenderPass()
		cb.End()

		if err := queue.Submit(cb); err != nil {
			return fmt.Errorf("frame %d: submit: %w", i, err)
		}
		if err := queue.SubmitFence(fence); err != nil {
			return fmt.Errorf("frame %d: submit fence: %w", i, err)
		}
		if _, err := queue.WaitFence(fence, 0); err != nil {
			return fmt.Errorf("frame %d: wait fence: %w", i, err)
		}

		out.Frame(counters.NextFrame())
	}

	if frame != nil {
		if err := capture.SaveTexture(cfg.Capture, r, frame, frameWidth, frameHeight); err != nil {
			return err
		}
		out.Printf("captured %s\n", cfg.Capture)
	}
	return nil
}
