package potential

import (
	"fmt"
	"sort"

	"github.com/numlab/radwave/internal/quantum"
)

// Model is a real radial potential shape.
type Model func(r float64, p Params) float64

var models = map[string]Model{
	"woods-saxon": WoodsSaxon,
	"square-well": SquareWell,
	"free":        Free,
}

// Lookup resolves a registered potential shape by name.
func Lookup(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", quantum.ErrUnknownPotential, name, Names())
	}
	return m, nil
}

// Names lists the registered shapes in sorted order.
func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SquareWell is the sharp-edge limit of the Woods-Saxon form, kept for
// comparison runs.
func SquareWell(r float64, p Params) float64 {
	if r <= p.Radius {
		return -p.Depth
	}
	return 0
}

// Free is the zero potential. Solutions reduce to Riccati-Bessel functions.
func Free(r float64, p Params) float64 {
	return 0
}
