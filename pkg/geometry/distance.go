package geometry

// DistanceFunc scores a candidate rect; lower scores rank first.
type DistanceFunc func(Rect) float64

// Distances builds the ranking keys for one target rect.
//
// The near* keys are gap distances and never go negative: a candidate that
// overlaps the measured line scores 0. The *First keys are raw edge
// positions used purely as orderings.
type Distances struct {
	target Rect
}

// DistancesFrom returns the ranking keys relative to target.
func DistancesFrom(target Rect) Distances {
	return Distances{target: target}
}

// NearPlumbLine measures the horizontal gap between the candidate and the
// target's vertical center line.
func (d Distances) NearPlumbLine(r Rect) float64 {
	if r.Center.X < d.target.Center.X {
		return clampZero(d.target.Center.X - r.Right)
	}
	return clampZero(r.Left - d.target.Center.X)
}

// NearHorizon measures the vertical gap between the candidate and the
// target's horizontal center line.
func (d Distances) NearHorizon(r Rect) float64 {
	if r.Center.Y < d.target.Center.Y {
		return clampZero(d.target.Center.Y - r.Bottom)
	}
	return clampZero(r.Top - d.target.Center.Y)
}

// NearTargetLeft measures the horizontal gap to the target's left edge.
func (d Distances) NearTargetLeft(r Rect) float64 {
	if r.Center.X < d.target.Center.X {
		return clampZero(d.target.Left - r.Right)
	}
	return clampZero(r.Left - d.target.Left)
}

// NearTargetTop measures the vertical gap to the target's top edge.
func (d Distances) NearTargetTop(r Rect) float64 {
	if r.Center.Y < d.target.Center.Y {
		return clampZero(d.target.Top - r.Bottom)
	}
	return clampZero(r.Top - d.target.Top)
}

// TopFirst orders candidates by their top edge.
func (d Distances) TopFirst(r Rect) float64 { return r.Top }

// BottomFirst orders candidates by their bottom edge, lowest first.
func (d Distances) BottomFirst(r Rect) float64 { return -r.Bottom }

// LeftFirst orders candidates by their left edge.
func (d Distances) LeftFirst(r Rect) float64 { return r.Left }

// RightFirst orders candidates by their right edge, rightmost first.
func (d Distances) RightFirst(r Rect) float64 { return -r.Right }
