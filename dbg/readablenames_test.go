package dbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	a, b := new(int), new(int)
	assert.Equal(t, Name(a), Name(a), "names are stable within a run")
	assert.NotEmpty(t, Name(b))
	assert.Equal(t, "Ø", Name(nil))
	var nilPtr *int
	assert.Equal(t, "Ø", Name(nilPtr))
	assert.Equal(t, Name(42), Name(42))
	slice := []int{1}
	assert.Equal(t, Name(slice), Name(slice))
	assert.Equal(t, "struct { s []int }", Name(struct{ s []int }{}))
}
