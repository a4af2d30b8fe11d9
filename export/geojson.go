// Package export converts packing results to GeoJSON, for GIS tools and
// numerical models that take particle lists.
package export

import (
	"io"

	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// GeoJSON builds a feature collection holding, in order, the boundary
// polygon, one polygon per mesh triangle and one point per circle. Every
// feature has a "type" property of "boundary", "triangle" or "circle".
// Circle features also carry "radius", "depth", "triangle" and "kind".
func GeoJSON(result *circpack.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{"run": result.ID.String()}

	boundary := geojson.NewFeature(orb.Polygon{ring(result.Polygon.Points())})
	boundary.Properties["type"] = "boundary"
	boundary.Properties["area"] = result.Polygon.Area()
	fc.Append(boundary)

	for i := 0; i < result.Mesh.Len(); i++ {
		tri := result.Mesh.Triangle(i)
		feature := geojson.NewFeature(orb.Polygon{ring([]geom.Point{tri.A, tri.B, tri.C})})
		feature.Properties["type"] = "triangle"
		feature.Properties["index"] = i
		fc.Append(feature)
	}

	for _, c := range result.Circles {
		feature := geojson.NewFeature(point(c.Center))
		feature.Properties["type"] = "circle"
		feature.Properties["radius"] = c.Radius
		feature.Properties["depth"] = c.Depth
		feature.Properties["triangle"] = c.Triangle
		feature.Properties["kind"] = c.Kind.String()
		fc.Append(feature)
	}
	return fc
}

// Write encodes GeoJSON(result) to w.
func Write(w io.Writer, result *circpack.Result) error {
	data, err := GeoJSON(result).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing geojson")
}

func point(p geom.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// GeoJSON rings repeat their first point at the end.
func ring(points []geom.Point) orb.Ring {
	r := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		r = append(r, point(p))
	}
	return append(r, point(points[0]))
}
