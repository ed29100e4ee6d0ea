package geometry

// Region indices of the 3x3 partition, row-major around the target.
const (
	RegionTopLeft = iota
	RegionTop
	RegionTopRight
	RegionLeft
	RegionCenter
	RegionRight
	RegionBottomLeft
	RegionBottom
	RegionBottomRight
)

// Candidate pairs an element handle with its measured rect.
type Candidate[E comparable] struct {
	Element E
	Rect    Rect
}

// Groups holds the nine partition regions.
type Groups[E comparable] [9][]Candidate[E]

// Region classifies r by its center point relative to target's edges.
func Region(r, target Rect) int {
	x := 1
	switch {
	case r.Center.X < target.Left:
		x = 0
	case r.Center.X > target.Right:
		x = 2
	}
	y := 1
	switch {
	case r.Center.Y < target.Top:
		y = 0
	case r.Center.Y > target.Bottom:
		y = 2
	}
	return y*3 + x
}

// diagonalSpill describes which straight regions a diagonal region may spill
// into, and how far a candidate reaches into the target's band on each axis.
type diagonalSpill struct {
	vertical   int
	horizontal int
	// reachX is how far the candidate extends into the target's columns.
	reachX func(r, target Rect) float64
	// reachY is how far the candidate extends into the target's rows.
	reachY func(r, target Rect) float64
}

var spills = map[int]diagonalSpill{
	RegionTopLeft: {
		vertical:   RegionTop,
		horizontal: RegionLeft,
		reachX:     func(r, t Rect) float64 { return r.Right - t.Left },
		reachY:     func(r, t Rect) float64 { return r.Bottom - t.Top },
	},
	RegionTopRight: {
		vertical:   RegionTop,
		horizontal: RegionRight,
		reachX:     func(r, t Rect) float64 { return t.Right - r.Left },
		reachY:     func(r, t Rect) float64 { return r.Bottom - t.Top },
	},
	RegionBottomLeft: {
		vertical:   RegionBottom,
		horizontal: RegionLeft,
		reachX:     func(r, t Rect) float64 { return r.Right - t.Left },
		reachY:     func(r, t Rect) float64 { return t.Bottom - r.Top },
	},
	RegionBottomRight: {
		vertical:   RegionBottom,
		horizontal: RegionRight,
		reachX:     func(r, t Rect) float64 { return t.Right - r.Left },
		reachY:     func(r, t Rect) float64 { return t.Bottom - r.Top },
	},
}

// Partition classifies candidates into the nine regions around target.
//
// A candidate in a diagonal region is also placed in one adjacent straight
// region when it reaches into the target's column (or row) by at least
// threshold of the target's width (or height). When it qualifies for both,
// it joins the axis it covers by the larger fraction; ties go to the
// vertical neighbour.
func Partition[E comparable](candidates []Candidate[E], target Rect, threshold float64) Groups[E] {
	var groups Groups[E]
	for _, c := range candidates {
		id := Region(c.Rect, target)
		groups[id] = append(groups[id], c)

		spill, ok := spills[id]
		if !ok {
			continue
		}
		if extra := spill.pick(c.Rect, target, threshold); extra >= 0 {
			groups[extra] = append(groups[extra], c)
		}
	}
	return groups
}

func (s diagonalSpill) pick(r, target Rect, threshold float64) int {
	rx := s.reachX(r, target)
	ry := s.reachY(r, target)
	inColumn := rx >= target.Width*threshold
	inRow := ry >= target.Height*threshold

	switch {
	case inColumn && inRow:
		if coverage(ry, target.Height) > coverage(rx, target.Width) {
			return s.horizontal
		}
		return s.vertical
	case inColumn:
		return s.vertical
	case inRow:
		return s.horizontal
	}
	return -1
}

func coverage(reach, extent float64) float64 {
	if extent <= 0 {
		return reach
	}
	return reach / extent
}
