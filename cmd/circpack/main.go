// Command circpack packs circles into the polygon read from a file or stdin
// and prints a summary. The boundary is either an SVG file holding a
// <polygon> element or text with one "x y" point per line.
//
//	circpack --depth 8 --max-area 0.5 --png packing.png slope.svg
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/export"
	"github.com/osuushi/circpack/polyio"
	"github.com/osuushi/circpack/render"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("circpack", "Pack non-overlapping circles into a polygon.")

	configPath = app.Flag("config", "TOML file with packing parameters.").ExistingFile()
	depth      = app.Flag("depth", "Corner levels per triangle.").Int()
	minAngle   = app.Flag("min-angle", "Minimum mesh angle in degrees.").Float64()
	maxArea    = app.Flag("max-area", "Maximum mesh triangle area.").Float64()
	length     = app.Flag("length", "Target mesh edge length.").Float64()
	minRadius  = app.Flag("min-radius", "Smallest circle to place.").Float64()
	fillGaps   = app.Flag("fill-gaps", "Also fill the gaps beside corner circles.").Bool()
	workers    = app.Flag("workers", "Triangles packed concurrently.").Int()

	pngPath     = app.Flag("png", "Write a PNG image of the packing.").String()
	svgPath     = app.Flag("svg", "Write an SVG drawing of the packing.").String()
	geojsonPath = app.Flag("geojson", "Write the mesh and circles as GeoJSON.").String()
	showImage   = app.Flag("imgcat", "Show the PNG in the terminal.").Bool()
	verbose     = app.Flag("verbose", "Log progress to stderr.").Short('v').Bool()

	boundaryPath = app.Arg("boundary", "Boundary file; stdin when omitted.").ExistingFile()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("circpack: %v", err)))
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if *verbose {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
		circpack.SetLogger(logger)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	points, err := readBoundary()
	if err != nil {
		return err
	}

	result, err := circpack.Pack(points, cfg)
	if err != nil {
		return err
	}
	if err := writeOutputs(result, out); err != nil {
		return err
	}
	printSummary(out, result.Stats())
	return nil
}

// Flags given on the command line override the config file, which overrides
// the defaults.
func loadConfig(args []string) (circpack.Config, error) {
	cfg := circpack.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = circpack.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}

	parsed, err := app.ParseContext(args)
	if err != nil {
		return cfg, err
	}
	overrides := map[string]func(){
		"depth":      func() { cfg.Depth = *depth },
		"min-angle":  func() { cfg.MinAngle = *minAngle },
		"max-area":   func() { cfg.MaxArea = *maxArea },
		"length":     func() { cfg.Length = *length },
		"min-radius": func() { cfg.MinRadius = *minRadius },
		"fill-gaps":  func() { cfg.FillGaps = *fillGaps },
		"workers":    func() { cfg.Workers = *workers },
	}
	for _, element := range parsed.Elements {
		if flag, ok := element.Clause.(*kingpin.FlagClause); ok {
			if override, ok := overrides[flag.Model().Name]; ok {
				override()
			}
		}
	}
	return cfg, nil
}

func readBoundary() ([]circpack.Point, error) {
	if *boundaryPath == "" {
		return polyio.ReadXY(os.Stdin)
	}
	f, err := os.Open(*boundaryPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(*boundaryPath), ".svg") {
		points, err := polyio.ReadSVG(f)
		return points, errors.Wrap(err, *boundaryPath)
	}
	points, err := polyio.ReadXY(f)
	return points, errors.Wrap(err, *boundaryPath)
}

func writeOutputs(result *circpack.Result, out io.Writer) error {
	opts := render.DefaultOptions()

	image := *pngPath
	if image == "" && *showImage {
		f, err := os.CreateTemp("", "circpack-*.png")
		if err != nil {
			return err
		}
		f.Close()
		defer os.Remove(f.Name())
		image = f.Name()
	}
	if image != "" {
		if err := render.SavePNG(image, result, opts); err != nil {
			return err
		}
		if *showImage {
			if err := render.Imgcat(image, out); err != nil {
				return err
			}
		}
	}

	if *svgPath != "" {
		if err := writeFile(*svgPath, func(w io.Writer) error { return render.SVG(w, result, opts) }); err != nil {
			return err
		}
	}
	if *geojsonPath != "" {
		if err := writeFile(*geojsonPath, func(w io.Writer) error { return export.Write(w, result) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}

func printSummary(out io.Writer, stats circpack.Stats) {
	fmt.Fprintf(out, "%s %d in %d triangles\n", aurora.Bold("circles:"), aurora.Cyan(stats.Count), stats.Triangles)
	fmt.Fprintf(out, "%s %.6g of %.6g\n", aurora.Bold("area:"), stats.PackedArea, stats.PolygonArea)
	fmt.Fprintf(out, "%s %s\n", aurora.Bold("fill ratio:"), aurora.Green(fmt.Sprintf("%.2f%%", 100*stats.FillRatio)))
	if stats.Count > 0 {
		fmt.Fprintf(out, "%s %.4g to %.4g (mean %.4g)\n", aurora.Bold("radius:"),
			stats.MinRadius, stats.MaxRadius, stats.MeanRadius)
	}
}
