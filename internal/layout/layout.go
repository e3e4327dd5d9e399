// Package layout infers the spatial organization of a detected element
// list: one of three mutually exclusive topologies (flex, grid, absolute)
// plus direction, alignment, gap and padding estimates.
//
// Every input maps to a defined output; degenerate element sets (fewer
// than two elements, collinear centers) fall back to the absolute verdict
// rather than failing.
package layout

import (
	"math"
	"sort"

	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/detection"
)

// Type is the inferred layout topology.
type Type string

const (
	TypeFlex     Type = "flex"
	TypeGrid     Type = "grid"
	TypeAbsolute Type = "absolute"
)

// Direction is the main axis of a flex layout.
type Direction string

const (
	DirectionRow    Direction = "row"
	DirectionColumn Direction = "column"
)

// Alignment describes how elements are distributed along the main axis.
type Alignment string

const (
	AlignStart        Alignment = "start"
	AlignCenter       Alignment = "center"
	AlignEnd          Alignment = "end"
	AlignSpaceBetween Alignment = "space-between"
	AlignSpaceAround  Alignment = "space-around"
)

// Analysis is the inferred layout of an element list. Only Type is always
// set; the remaining fields are derived where the topology defines them.
type Analysis struct {
	Type      Type      `json:"type"`
	Direction Direction `json:"direction,omitempty"`
	Alignment Alignment `json:"alignment,omitempty"`
	Gap       int       `json:"gap,omitempty"`
	Padding   int       `json:"padding,omitempty"`
}

// axis selects which coordinate resolveAlignment works along.
type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

// Analyze infers the layout of elements within a width x height canvas.
//
// The grid verdict is tested first (distinct rows and columns with
// consistent gaps), then flex (a dominant pairwise alignment along one
// axis), and absolute is the fallback. Fewer than two elements is a
// terminal case: the verdict is absolute with no further computation.
// The function is pure and never fails.
func Analyze(elements []detection.DetectedElement, width, height int, cfg config.Layout) Analysis {
	if len(elements) < 2 {
		return Analysis{Type: TypeAbsolute}
	}

	byX := sortedBy(elements, func(e detection.DetectedElement) int { return e.Bounds.X })
	byY := sortedBy(elements, func(e detection.DetectedElement) int { return e.Bounds.Y })

	hGaps := positiveGaps(byX, axisHorizontal)
	vGaps := positiveGaps(byY, axisVertical)
	padding := estimatePadding(elements, cfg)
	align := overallAlignment(elements, width, cfg)

	// Grid: multiple rows and columns with consistent spacing on both axes.
	rows := countGroups(byY, func(e detection.DetectedElement) int { return e.Bounds.Y }, cfg.AxisTolerance)
	cols := countGroups(byX, func(e detection.DetectedElement) int { return e.Bounds.X }, cfg.AxisTolerance)
	if rows >= 2 && cols >= 2 &&
		stddev(hGaps) < cfg.GridGapStddev && stddev(vGaps) < cfg.GridGapStddev {
		return Analysis{
			Type:      TypeGrid,
			Alignment: align,
			Gap:       averageGap(hGaps, vGaps, cfg.DefaultGap),
			Padding:   padding,
		}
	}

	// Flex: enough element pairs share a coordinate along one axis.
	if pairScore(elements, axisVertical, cfg.PairTolerance) > cfg.ScoreCutoff {
		return Analysis{
			Type:      TypeFlex,
			Direction: DirectionRow,
			Alignment: resolveAlignment(byX, axisHorizontal, width, cfg),
			Gap:       median(hGaps, cfg.DefaultGap),
			Padding:   padding,
		}
	}
	if pairScore(elements, axisHorizontal, cfg.PairTolerance) > cfg.ScoreCutoff {
		return Analysis{
			Type:      TypeFlex,
			Direction: DirectionColumn,
			Alignment: resolveAlignment(byY, axisVertical, height, cfg),
			Gap:       median(vGaps, cfg.DefaultGap),
			Padding:   padding,
		}
	}

	return Analysis{Type: TypeAbsolute, Padding: padding}
}

// sortedBy returns a copy of elements ordered by the key. The sort is
// stable so ties keep detection order and the result is deterministic.
func sortedBy(elements []detection.DetectedElement, key func(detection.DetectedElement) int) []detection.DetectedElement {
	out := make([]detection.DetectedElement, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) < key(out[j])
	})
	return out
}

// positiveGaps returns the gaps between consecutive sorted elements along
// the given axis (next start minus previous end), keeping positive values
// only. Overlapping neighbors contribute nothing.
func positiveGaps(sorted []detection.DetectedElement, a axis) []float64 {
	gaps := make([]float64, 0, len(sorted))
	for i := 1; i < len(sorted); i++ {
		var gap int
		if a == axisHorizontal {
			gap = sorted[i].Bounds.X - (sorted[i-1].Bounds.X + sorted[i-1].Bounds.Width)
		} else {
			gap = sorted[i].Bounds.Y - (sorted[i-1].Bounds.Y + sorted[i-1].Bounds.Height)
		}
		if gap > 0 {
			gaps = append(gaps, float64(gap))
		}
	}
	return gaps
}

// countGroups clusters sorted coordinate values within the tolerance and
// returns the number of distinct groups.
func countGroups(sorted []detection.DetectedElement, key func(detection.DetectedElement) int, tolerance int) int {
	if len(sorted) == 0 {
		return 0
	}
	groups := 1
	ref := key(sorted[0])
	for _, e := range sorted[1:] {
		if key(e)-ref > tolerance {
			groups++
			ref = key(e)
		}
	}
	return groups
}

// pairScore returns the fraction of element pairs whose coordinates along
// the given axis differ by at most the tolerance. A high vertical-axis
// score means the elements form a horizontal row, and vice versa.
func pairScore(elements []detection.DetectedElement, a axis, tolerance int) float64 {
	n := len(elements)
	if n < 2 {
		return 0
	}
	aligned := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d int
			if a == axisVertical {
				d = elements[i].Bounds.Y - elements[j].Bounds.Y
			} else {
				d = elements[i].Bounds.X - elements[j].Bounds.X
			}
			if d < 0 {
				d = -d
			}
			if d <= tolerance {
				aligned++
			}
		}
	}
	return float64(aligned) / float64(n*(n-1)/2)
}

// estimatePadding guesses the container padding from the minimum element
// offset, clamped to a plausible range.
func estimatePadding(elements []detection.DetectedElement, cfg config.Layout) int {
	minX, minY := math.MaxInt, math.MaxInt
	for _, e := range elements {
		if e.Bounds.X < minX {
			minX = e.Bounds.X
		}
		if e.Bounds.Y < minY {
			minY = e.Bounds.Y
		}
	}
	p := minX
	if minY < p {
		p = minY
	}
	if p < cfg.PaddingMin {
		return cfg.PaddingMin
	}
	if p > cfg.PaddingMax {
		return cfg.PaddingMax
	}
	return p
}

// overallAlignment compares the average element center against the canvas
// center: close to it means center, otherwise the bias side wins.
func overallAlignment(elements []detection.DetectedElement, width int, cfg config.Layout) Alignment {
	var sum float64
	for _, e := range elements {
		sum += float64(e.Bounds.X) + float64(e.Bounds.Width)/2
	}
	avg := sum / float64(len(elements))
	half := float64(width) / 2

	if math.Abs(avg-half) <= cfg.CenterBias*half {
		return AlignCenter
	}
	if avg < half {
		return AlignStart
	}
	return AlignEnd
}

// resolveAlignment classifies the distribution of sorted elements along
// one axis of the given extent.
//
// Uniform gaps wide enough to look intentional read as space-between or
// space-around; otherwise the verdict comes from where the run of
// elements sits: hugging the start edge, hugging the end edge, or inside
// the central band. Small uniform gaps (a plain stacked list) fall through
// to the positional rules.
func resolveAlignment(sorted []detection.DetectedElement, a axis, extent int, cfg config.Layout) Alignment {
	gaps := positiveGaps(sorted, a)

	if len(gaps) > 0 && stddev(gaps) < cfg.AlignGapStddev {
		avg := mean(gaps)
		if avg > cfg.SpaceBetweenGap {
			return AlignSpaceBetween
		}
		if avg > cfg.SpaceAroundGap {
			return AlignSpaceAround
		}
	}

	first := sorted[0]
	last := sorted[len(sorted)-1]

	var start, end float64
	if a == axisHorizontal {
		start = float64(first.Bounds.X)
		end = float64(last.Bounds.X + last.Bounds.Width)
	} else {
		start = float64(first.Bounds.Y)
		end = float64(last.Bounds.Y + last.Bounds.Height)
	}

	ext := float64(extent)
	switch {
	case start <= cfg.EdgeBand*ext:
		return AlignStart
	case end >= (1-cfg.EdgeBand)*ext:
		return AlignEnd
	case start >= cfg.CenterBandLow*ext && end <= cfg.CenterBandHigh*ext:
		return AlignCenter
	default:
		return AlignStart
	}
}

// averageGap returns the rounded mean of all gaps on both axes, or the
// default when no positive gaps exist.
func averageGap(hGaps, vGaps []float64, def int) int {
	all := append(append([]float64{}, hGaps...), vGaps...)
	if len(all) == 0 {
		return def
	}
	return int(mean(all) + 0.5)
}

// median returns the rounded median gap, or the default when the list is
// empty.
func median(gaps []float64, def int) int {
	if len(gaps) == 0 {
		return def
	}
	sorted := append([]float64{}, gaps...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return int(sorted[n/2] + 0.5)
	}
	return int((sorted[n/2-1]+sorted[n/2])/2 + 0.5)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stddev of an empty list is zero, which deliberately passes the
// consistency tests: no measurable gaps is treated as trivially uniform.
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}
