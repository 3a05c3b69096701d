// Command svgview parses an SVG file and writes one or more PNG frames
// of it, advancing through its SMIL animations if it has any. Grounded
// on original_source/demo/svgviewer's still-frame dump mode and the
// teacher's cmd/ layout convention (cmd/pdftext, cmd/fontinfo).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/tdewolff/nanosvg"
	"github.com/tdewolff/nanosvg/raster"
)

func main() {
	var dpi float64
	var units string
	var frames int
	var stepMs int64
	var out string
	flag.Float64Var(&dpi, "dpi", 96, "pixels per inch for unit conversion")
	flag.StringVar(&units, "units", "px", "output units: px, pt, pc, mm, cm, in")
	flag.IntVar(&frames, "frames", 1, "number of animation frames to render")
	flag.Int64Var(&stepMs, "step", 100, "milliseconds between frames")
	flag.StringVar(&out, "out", "frame", "output file prefix")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: svgview [flags] file.svg")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "svgview:", err)
		os.Exit(1)
	}

	img, err := nanosvg.Parse(string(data), units, dpi)
	if err != nil {
		fmt.Fprintln(os.Stderr, "svgview:", err)
		os.Exit(1)
	}

	canvas := raster.NewCanvas(int(img.Width+0.5), int(img.Height+0.5))
	for i := 0; i < frames; i++ {
		t := int64(i) * stepMs
		nanosvg.Animate(img, t)
		canvas.Prepare(int(img.Width+0.5), int(img.Height+0.5))
		for idx := range img.Shapes {
			canvas.Rasterize(img, idx)
		}
		if err := writePNG(fmt.Sprintf("%s%03d.png", out, i), canvas.RasterizeFinish()); err != nil {
			fmt.Fprintln(os.Stderr, "svgview:", err)
			os.Exit(1)
		}
	}
}

func writePNG(name string, im image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, im)
}
