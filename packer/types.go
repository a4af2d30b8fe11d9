package packer

import (
	"fmt"

	"github.com/osuushi/circpack/geom"
)

// Kind records which pocket a circle was solved for.
type Kind int

const (
	Incircle Kind = iota
	CornerCircle
	EdgeGapCircle
	IntersticeCircle
)

func (k Kind) String() string {
	switch k {
	case Incircle:
		return "incircle"
	case CornerCircle:
		return "corner"
	case EdgeGapCircle:
		return "edge-gap"
	case IntersticeCircle:
		return "interstice"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Circle is a placed circle along with where it came from.
type Circle struct {
	geom.Circle
	// Index of the mesh triangle the circle was packed into.
	Triangle int
	// 0 for the incircle, k for circles placed at the k-th corner level.
	Depth int
	// Vertex index of the corner the circle fills, or -1 for the incircle.
	Corner int
	Kind   Kind
}

type Options struct {
	// Corner levels per branch. 0 places only the incircle.
	Depth int
	// Smaller circles are not placed, and their branch ends there.
	MinRadius float64
	// Also fill the gaps each corner circle leaves along the edges and
	// against its parent.
	FillGaps bool
}

// Task is one pending corner level: fill the corner at vertex Corner next to
// Parent, which was placed at Depth-1.
type Task struct {
	Corner int
	Parent geom.Circle
	Depth  int
}

// TaskStack is the worklist for corner filling.
type TaskStack []Task

func (s *TaskStack) Push(task Task) {
	*s = append(*s, task)
}

func (s *TaskStack) Pop() (Task, bool) {
	if len(*s) == 0 {
		return Task{}, false
	}
	task := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return task, true
}
