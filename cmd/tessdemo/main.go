// Command tessdemo tessellates sample paths and reports pipeline stats.
package main

import (
	"flag"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/gpu"
	"github.com/gogpu/tess/raster"
)

func main() {
	var (
		shape   = flag.String("shape", "wave", "sample path: wave, circle, star")
		step    = flag.Float64("step", 4, "tessellation step in world units")
		width0  = flag.Float64("width0", 8, "stroke width at segment starts")
		width1  = flag.Float64("width1", 2, "stroke width at segment ends")
		workers = flag.Int("workers", 0, "worker count for parallel evaluation (0 = GOMAXPROCS)")
		output  = flag.String("output", "", "write a preview PNG to this file")
		useGPU  = flag.Bool("gpu", false, "probe for a GPU device and log its info")
	)
	flag.Parse()

	if *useGPU {
		probeGPU()
	}

	p := buildPath(*shape)

	ts := tess.New(
		tess.WithStep(float32(*step)),
		tess.WithWorkers(*workers),
	)
	defer ts.Close()

	res, err := ts.Tessellate(p, float32(*width0), float32(*width1))
	if err != nil {
		log.Fatalf("Tessellation failed: %v", err)
	}

	log.Printf("shape=%s commands=%d descriptors=%d vertices=%d",
		*shape, len(p.Commands()), len(res.Descriptors()), res.VertexCount())
	for i, d := range res.Descriptors() {
		log.Printf("  descriptor %d: kind=%s count=%d index=%d", i, d.Kind, d.VertexCount, d.VertexIndex)
	}

	if *output != "" {
		writePreview(*output, res)
	}
}

func probeGPU() {
	dev := gpu.NewDevice()
	if err := dev.Init(); err != nil {
		log.Printf("GPU unavailable, evaluating on CPU: %v", err)
		return
	}
	defer dev.Close()
	if info := dev.Info(); info != nil {
		log.Printf("GPU: %s", info)
	}
}

func buildPath(shape string) *tess.Path {
	p := tess.NewPath()
	switch shape {
	case "circle":
		p.Circle(256, 256, 180)

	case "star":
		const points = 5
		outerR := 200.0
		innerR := 90.0
		for i := 0; i < points*2; i++ {
			angle := float64(i) * math.Pi / points
			r := outerR
			if i%2 == 1 {
				r = innerR
			}
			x := 256 + r*math.Cos(angle-math.Pi/2)
			y := 256 + r*math.Sin(angle-math.Pi/2)
			if i == 0 {
				p.MoveTo(float32(x), float32(y))
			} else {
				p.LineTo(float32(x), float32(y))
			}
		}
		p.Close()

	default: // wave
		p.MoveTo(30, 256)
		p.CubicTo(120, 120, 200, 390, 290, 256)
		p.CubicTo(360, 150, 420, 360, 480, 256)
	}
	return p
}

func writePreview(path string, res *tess.Result) {
	r := raster.New(512, 512)
	r.Clear(color.White)
	r.RenderResult(res, color.RGBA{R: 0xE0, G: 0x60, B: 0x20, A: 0xFF})

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, r.Image()); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}
	log.Printf("Preview saved to %s", path)
}
