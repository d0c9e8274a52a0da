package grid

// Fixed color anchors: green for the coldest value through yellow to red for
// the hottest.
const (
	ColorLow  = "00FF00"
	ColorMid  = "FFFF00"
	ColorHigh = "FF0000"
)

// ColorScale is a three-point value-to-color interpolation to apply over the
// grid's occupied rectangle.
type ColorScale struct {
	Min float64
	Mid float64
	Max float64
}

// PlanColorScale computes the color scale for the given written values.
// Returns nil when no values were written, meaning no coloring applies.
// Mid is the midpoint of the range, not a statistic of the values.
func PlanColorScale(values []float64) *ColorScale {
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return &ColorScale{Min: min, Mid: (min + max) / 2, Max: max}
}
