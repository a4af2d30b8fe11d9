// Package circpack fills a polygon with non-overlapping circles.
//
// The polygon is cut into a constrained Delaunay mesh of well-shaped
// triangles. Each triangle then gets its incircle, and every corner of the
// triangle is filled with a chain of ever smaller circles, each touching the
// two edges of the corner and the circle before it. The result is a
// multi-scale packing whose area approaches the polygon's.
//
//	result, err := circpack.Pack(points, circpack.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Stats().FillRatio)
package circpack

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/osuushi/circpack/geom"
	"github.com/osuushi/circpack/internal/logging"
	"github.com/osuushi/circpack/mesh"
	"github.com/osuushi/circpack/packer"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Point = geom.Point
type Circle = packer.Circle

// Boundary problems: too few points, no area or self-intersection.
type DegenerateGeometryError = geom.DegenerateGeometryError

// Quality constraints or a boundary the mesher could not satisfy.
type TriangulationError = mesh.TriangulationError

// Result is one finished packing run.
type Result struct {
	// Identifies the run in logs.
	ID      uuid.UUID
	Polygon *geom.Polygon
	Mesh    *mesh.Mesh
	// Circles of every triangle, in mesh triangle order. Within a triangle,
	// the incircle comes first.
	Circles []Circle
	Config  Config
}

// SetLogger routes the log output of all circpack packages to l. Runs are
// logged at Info, their stages at Debug. Nil restores the default, which
// discards everything.
func SetLogger(l logrus.FieldLogger) {
	logging.Set(l)
}

// Pack runs PackContext without cancellation.
func Pack(boundary []Point, cfg Config) (*Result, error) {
	return PackContext(context.Background(), boundary, cfg)
}

// PackContext packs the polygon with the given boundary points. Invalid
// geometry fails with *DegenerateGeometryError and a mesh that cannot be
// built with *TriangulationError; either way there is no partial result. If
// ctx is cancelled before all triangles are packed, its error is returned.
func PackContext(ctx context.Context, boundary []Point, cfg Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := logging.L().WithField("run", id)

	poly, err := geom.NewPolygon(boundary)
	if err != nil {
		return nil, err
	}
	log.WithField("vertices", poly.Len()).Info("packing polygon")

	m, err := mesh.Triangulate(poly, cfg.Quality())
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"triangles": m.Len(),
		"steiner":   len(m.Vertices) - m.Boundary,
	}).Debug("mesh ready")

	circles, err := packMesh(ctx, m, cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("circles", len(circles)).Info("packing done")

	return &Result{
		ID:      id,
		Polygon: poly,
		Mesh:    m,
		Circles: circles,
		Config:  cfg,
	}, nil
}

// Triangles are independent, so they are packed concurrently, each into its
// own slot, and joined in triangle order afterwards. The output does not
// depend on the number of workers.
func packMesh(ctx context.Context, m *mesh.Mesh, cfg Config) ([]Circle, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	opts := cfg.packerOptions()
	slots := make([][]Circle, m.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range slots {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = packer.PackTriangle(i, m.Triangle(i), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var count int
	for _, slot := range slots {
		count += len(slot)
	}
	circles := make([]Circle, 0, count)
	for _, slot := range slots {
		circles = append(circles, slot...)
	}
	return circles, nil
}
