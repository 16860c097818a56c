// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster renders tessellated vertex streams to images for
// previews and debugging. It fills one quad per vertex pair using the
// per-vertex stroke widths, which is enough to eyeball tessellation
// density and width interpolation; it is not a production stroker (no
// joins, no caps, no anti-aliased curve fitting).
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/gogpu/tess"
)

// Renderer rasterizes vertex streams into an RGBA image.
// The zero value is not usable; create one with New.
type Renderer struct {
	width  int
	height int
	ras    *vector.Rasterizer
	image  *image.RGBA
}

// New creates a renderer with the given pixel dimensions.
func New(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		ras:    &vector.Rasterizer{},
		image:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image returns the target image. Valid after Render.
func (r *Renderer) Image() *image.RGBA {
	return r.image
}

// Clear fills the image with the given color.
func (r *Renderer) Clear(c color.Color) {
	draw.Draw(r.image, r.image.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Render draws the vertex stream as a sequence of width-extruded quads in
// the given color. Consecutive vertices are treated as a polyline; each
// pair is extruded sideways by half the interpolated width at each end.
//
// Zero-width or coincident pairs are skipped.
func (r *Renderer) Render(vertices []tess.Vertex, c color.Color) {
	r.ras.Reset(r.width, r.height)
	r.ras.DrawOp = draw.Over

	quads := 0
	for i := 0; i+1 < len(vertices); i++ {
		v0 := vertices[i]
		v1 := vertices[i+1]

		dx := v1.X - v0.X
		dy := v1.Y - v0.Y
		length := math32.Hypot(dx, dy)
		if length == 0 || (v0.Width == 0 && v1.Width == 0) {
			continue
		}

		// Unit normal to the segment direction
		nx := -dy / length
		ny := dx / length

		h0 := v0.Width / 2
		h1 := v1.Width / 2

		r.ras.MoveTo(v0.X+nx*h0, v0.Y+ny*h0)
		r.ras.LineTo(v1.X+nx*h1, v1.Y+ny*h1)
		r.ras.LineTo(v1.X-nx*h1, v1.Y-ny*h1)
		r.ras.LineTo(v0.X-nx*h0, v0.Y-ny*h0)
		r.ras.ClosePath()
		quads++
	}

	if quads == 0 {
		return
	}
	r.ras.Draw(r.image, r.image.Bounds(), image.NewUniform(c), image.Point{})
}

// RenderResult draws each descriptor's vertex run separately, so quads
// never bridge unconnected segments of different subpaths.
func (r *Renderer) RenderResult(res *tess.Result, c color.Color) {
	vertices := res.Vertices()
	for _, d := range res.Descriptors() {
		if d.VertexCount < 2 {
			continue
		}
		start := int(d.VertexIndex)
		end := start + int(d.VertexCount)
		r.Render(vertices[start:end], c)
	}
}
