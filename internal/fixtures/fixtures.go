// Package fixtures provides boundary polygons for tests. SVG fixtures live in
// the fixtures/ directory and are available by name, sans extension. If
// anything goes wrong loading one, the test binary dies.
package fixtures

import (
	"embed"
	"log"
	"math"
	"math/rand"

	"github.com/osuushi/circpack/geom"
	"github.com/osuushi/circpack/polyio"
)

//go:embed fixtures
var fixtures embed.FS

// Points of the named SVG fixture, as written in the file.
func Points(name string) []geom.Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	points, err := polyio.ReadSVG(fixture)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}
	return points
}

func Load(name string) *geom.Polygon {
	return mustPolygon(Points(name))
}

// Names of all SVG fixtures.
func Names() []string {
	entries, err := fixtures.ReadDir("fixtures")
	if err != nil {
		log.Fatalf("Could not list fixtures: %v", err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		names = append(names, name[:len(name)-len(".svg")])
	}
	return names
}

// Some ad hoc fixtures

func SquarePoints(side float64) []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}}
}

func Square(side float64) *geom.Polygon {
	return mustPolygon(SquarePoints(side))
}

func EquilateralPoints(side float64) []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side / 2, Y: side * math.Sqrt(3) / 2}}
}

func SimpleStarPoints() []geom.Point {
	var points []geom.Point
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		var radius float64
		if i%2 == 0 {
			radius = outerRadius
		} else {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, geom.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return points
}

func SimpleStar() *geom.Polygon {
	return mustPolygon(SimpleStarPoints())
}

// A star with 2*spikes points whose radii and angles are jittered by a seeded
// generator. The tips are often only a few degrees wide.
func RandomStarPoints(seed int64, spikes int) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]geom.Point, 2*spikes)
	for i := range points {
		radius := 0.5 + 1.5*rng.Float64()
		if i%2 == 0 {
			radius = 4 + 6*rng.Float64()
		}
		angle := math.Pi * (float64(i) + 0.4*(rng.Float64()-0.5)) / float64(spikes)
		points[i] = geom.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return points
}

func RandomStar(seed int64, spikes int) *geom.Polygon {
	return mustPolygon(RandomStarPoints(seed, spikes))
}

// A regular polygon approximating a disc.
func Disc(radius float64, sides int) *geom.Polygon {
	points := make([]geom.Point, sides)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		points[i] = geom.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return mustPolygon(points)
}

func mustPolygon(points []geom.Point) *geom.Polygon {
	poly, err := geom.NewPolygon(points)
	if err != nil {
		log.Fatalf("Invalid fixture polygon: %v", err)
	}
	return poly
}
