package mesh

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityAreaBound(t *testing.T) {
	equilateral := math.Sqrt(3) // side 2
	assert.Equal(t, 0.0, Quality{}.AreaBound())
	assert.Equal(t, 5.0, Quality{MaxArea: 5}.AreaBound())
	assert.InDelta(t, equilateral, Quality{Length: 2}.AreaBound(), 1e-12)
	assert.InDelta(t, equilateral, Quality{MaxArea: 3, Length: 2}.AreaBound(), 1e-12)
	assert.Equal(t, 1.0, Quality{MaxArea: 1, Length: 2}.AreaBound())
}

func TestQualityResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := Quality{MinAngle: 20}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxSteiner, q.MaxSteiner)
		assert.Equal(t, 20.0, q.MinAngle)
	})

	t.Run("keeps explicit steiner limit", func(t *testing.T) {
		q, err := Quality{MaxSteiner: 7}.Resolve()
		require.NoError(t, err)
		assert.Equal(t, 7, q.MaxSteiner)
	})

	invalid := []struct {
		name    string
		quality Quality
	}{
		{"negative angle", Quality{MinAngle: -1}},
		{"angle too large", Quality{MinAngle: 35}},
		{"NaN angle", Quality{MinAngle: math.NaN()}},
		{"negative area", Quality{MaxArea: -2}},
		{"infinite area", Quality{MaxArea: math.Inf(1)}},
		{"negative length", Quality{Length: -0.5}},
		{"negative steiner limit", Quality{MaxSteiner: -1}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.quality.Resolve()
			var triErr *TriangulationError
			require.True(t, errors.As(err, &triErr), "expected TriangulationError, got %v", err)
			assert.NotEmpty(t, triErr.Reason)
		})
	}

	t.Run("upper angle bound is inclusive", func(t *testing.T) {
		_, err := Quality{MinAngle: MaxMinAngle}.Resolve()
		assert.NoError(t, err)
	})
}
