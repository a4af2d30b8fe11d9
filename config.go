package circpack

import (
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/osuushi/circpack/mesh"
	"github.com/osuushi/circpack/packer"
	"github.com/pkg/errors"
)

// Config holds everything a packing run needs besides the boundary. It can be
// read from a TOML file:
//
//	depth = 8
//	min_angle = 25.0
//	max_area = 0.5
//	fill_gaps = true
type Config struct {
	// Corner levels packed into each triangle after its incircle.
	Depth int `toml:"depth"`
	// Mesh quality: minimum triangle angle in degrees, maximum triangle area
	// and target edge length. Zero leaves the constraint out.
	MinAngle float64 `toml:"min_angle"`
	MaxArea  float64 `toml:"max_area"`
	Length   float64 `toml:"length"`
	// Circles smaller than this are not placed.
	MinRadius float64 `toml:"min_radius"`
	// Also place the circles filling the gaps beside every corner circle.
	FillGaps bool `toml:"fill_gaps"`
	// Triangles packed concurrently. Zero or less uses GOMAXPROCS.
	Workers int `toml:"workers"`
	// Cap on mesh refinement points. Zero uses mesh.DefaultMaxSteiner.
	MaxSteiner int `toml:"max_steiner"`
}

func DefaultConfig() Config {
	return Config{
		Depth:    10,
		MinAngle: 20,
	}
}

// LoadConfig reads a TOML file over the defaults. Keys the file sets replace
// the default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return Config{}, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks the packing parameters. Mesh quality problems come back as
// *TriangulationError, like they would from the mesher itself.
func (c Config) Validate() error {
	if c.Depth < 0 {
		return errors.Errorf("depth %d must not be negative", c.Depth)
	}
	if math.IsNaN(c.MinRadius) || math.IsInf(c.MinRadius, 0) || c.MinRadius < 0 {
		return errors.Errorf("minimum radius %g must be a non-negative number", c.MinRadius)
	}
	_, err := c.Quality().Resolve()
	return err
}

func (c Config) Quality() mesh.Quality {
	return mesh.Quality{
		MinAngle:   c.MinAngle,
		MaxArea:    c.MaxArea,
		Length:     c.Length,
		MaxSteiner: c.MaxSteiner,
	}
}

func (c Config) packerOptions() packer.Options {
	return packer.Options{
		Depth:     c.Depth,
		MinRadius: c.MinRadius,
		FillGaps:  c.FillGaps,
	}
}
