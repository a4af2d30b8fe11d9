// Package polyio reads polygon boundaries from plain text and SVG.
package polyio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/circpack/geom"
	"github.com/pkg/errors"
)

// ReadXY reads newline separated points in the form "x y" (or "x,y"). Blank
// lines and lines starting with # are skipped.
func ReadXY(r io.Reader) ([]geom.Point, error) {
	var points []geom.Point
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		values, err := parseNumbers(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		if len(values) != 2 {
			return nil, errors.Errorf("line %d: expected 2 coordinates, got %d", lineNumber, len(values))
		}
		points = append(points, geom.Point{X: values[0], Y: values[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	return points, nil
}

// ReadSVG returns the points of the first <polygon> element. This is not a
// full SVG reader: transforms and other shapes are ignored, and coordinates
// are used as they are (so y grows downwards compared to the drawing).
func ReadSVG(r io.Reader) ([]geom.Point, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}

	polygons := root.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, errors.New("no polygon element found")
	}

	values, err := parseNumbers(polygons[0].Attributes["points"])
	if err != nil {
		return nil, errors.Wrap(err, "polygon points")
	}
	if len(values)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates (%d) in polygon points", len(values))
	}
	points := make([]geom.Point, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		points = append(points, geom.Point{X: values[i], Y: values[i+1]})
	}
	return points, nil
}

// Numbers separated by any mix of commas and whitespace.
func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q", field)
		}
		values = append(values, v)
	}
	return values, nil
}
