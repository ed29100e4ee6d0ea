package geometry

import "sort"

// Tier is one priority level: a candidate group and the keys that rank it.
type Tier[E comparable] struct {
	Group    []Candidate[E]
	Distance []DistanceFunc
}

// Prioritize picks the first non-empty tier and returns its members sorted
// by the tier's keys, compared in order until one differs. The sort is
// stable so equal candidates keep their input order. Returns nil when every
// tier is empty.
func Prioritize[E comparable](tiers []Tier[E]) []Candidate[E] {
	for _, tier := range tiers {
		if len(tier.Group) == 0 {
			continue
		}
		sorted := append([]Candidate[E](nil), tier.Group...)
		keys := tier.Distance
		sort.SliceStable(sorted, func(i, j int) bool {
			for _, key := range keys {
				delta := key(sorted[i].Rect) - key(sorted[j].Rect)
				if delta != 0 {
					return delta < 0
				}
			}
			return false
		})
		return sorted
	}
	return nil
}

// Previous records the last navigation out of a section so an immediate
// reversal can return to where it started.
type Previous[E comparable] struct {
	Target      E
	Destination E
	Reverse     Direction
}

// Options tunes a single Navigate call.
type Options[E comparable] struct {
	StraightOnly             bool
	StraightOverlapThreshold float64
	RememberSource           bool
	Previous                 *Previous[E]
}

// Navigate chooses the destination among candidates when moving from target
// in direction dir. The second result is false when nothing qualifies.
func Navigate[E comparable](target Candidate[E], dir Direction, candidates []Candidate[E], opts Options[E]) (E, bool) {
	var zero E
	if len(candidates) == 0 || !dir.Valid() {
		return zero, false
	}

	targetRect := target.Rect
	groups := Partition(candidates, targetRect, opts.StraightOverlapThreshold)
	internal := Partition(groups[RegionCenter], targetRect.CenterRect(), opts.StraightOverlapThreshold)

	tiers := priorities(dir, groups, internal, DistancesFrom(targetRect))
	if opts.StraightOnly {
		tiers = tiers[:len(tiers)-1]
	}

	dest := Prioritize(tiers)
	if dest == nil {
		return zero, false
	}

	if opts.RememberSource && opts.Previous != nil &&
		opts.Previous.Destination == target.Element && opts.Previous.Reverse == dir {
		for _, c := range dest {
			if c.Element == opts.Previous.Target {
				return c.Element, true
			}
		}
	}
	return dest[0].Element, true
}

func priorities[E comparable](dir Direction, groups, internal Groups[E], d Distances) []Tier[E] {
	switch dir {
	case Left:
		return []Tier[E]{
			{
				Group:    join(internal[RegionTopLeft], internal[RegionLeft], internal[RegionBottomLeft]),
				Distance: []DistanceFunc{d.NearPlumbLine, d.TopFirst},
			},
			{
				Group:    groups[RegionLeft],
				Distance: []DistanceFunc{d.NearPlumbLine, d.TopFirst},
			},
			{
				Group:    join(groups[RegionTopLeft], groups[RegionBottomLeft]),
				Distance: []DistanceFunc{d.NearHorizon, d.RightFirst, d.NearTargetTop},
			},
		}
	case Right:
		return []Tier[E]{
			{
				Group:    join(internal[RegionTopRight], internal[RegionRight], internal[RegionBottomRight]),
				Distance: []DistanceFunc{d.NearPlumbLine, d.TopFirst},
			},
			{
				Group:    groups[RegionRight],
				Distance: []DistanceFunc{d.NearPlumbLine, d.TopFirst},
			},
			{
				Group:    join(groups[RegionTopRight], groups[RegionBottomRight]),
				Distance: []DistanceFunc{d.NearHorizon, d.LeftFirst, d.NearTargetTop},
			},
		}
	case Up:
		return []Tier[E]{
			{
				Group:    join(internal[RegionTopLeft], internal[RegionTop], internal[RegionTopRight]),
				Distance: []DistanceFunc{d.NearHorizon, d.LeftFirst},
			},
			{
				Group:    groups[RegionTop],
				Distance: []DistanceFunc{d.NearHorizon, d.LeftFirst},
			},
			{
				Group:    join(groups[RegionTopLeft], groups[RegionTopRight]),
				Distance: []DistanceFunc{d.NearPlumbLine, d.BottomFirst, d.NearTargetLeft},
			},
		}
	default:
		return []Tier[E]{
			{
				Group:    join(internal[RegionBottomLeft], internal[RegionBottom], internal[RegionBottomRight]),
				Distance: []DistanceFunc{d.NearHorizon, d.LeftFirst},
			},
			{
				Group:    groups[RegionBottom],
				Distance: []DistanceFunc{d.NearHorizon, d.LeftFirst},
			},
			{
				Group:    join(groups[RegionBottomLeft], groups[RegionBottomRight]),
				Distance: []DistanceFunc{d.NearPlumbLine, d.TopFirst, d.NearTargetLeft},
			},
		}
	}
}

func join[E comparable](parts ...[]Candidate[E]) []Candidate[E] {
	var out []Candidate[E]
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
