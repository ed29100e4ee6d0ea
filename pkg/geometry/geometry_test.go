package geometry

import (
	"testing"
)

func cand(id string, x, y, w, h float64) Candidate[string] {
	return Candidate[string]{Element: id, Rect: NewRect(x, y, w, h)}
}

func TestNewRect(t *testing.T) {
	r := NewRect(10, 20, 7, 5)

	if r.Right != 17 || r.Bottom != 25 {
		t.Errorf("edges = (%v,%v), want (17,25)", r.Right, r.Bottom)
	}
	// Center is floored to whole units.
	if r.Center != (Point{X: 13, Y: 22}) {
		t.Errorf("Center = %+v, want {13 22}", r.Center)
	}
	if r.Empty() {
		t.Error("Empty() = true for sized rect")
	}
	if !NewRect(5, 5, 0, 0).Empty() {
		t.Error("Empty() = false for zero-size rect")
	}
}

func TestRect_Intersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if !a.Intersects(NewRect(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(NewRect(10, 0, 10, 10)) {
		t.Error("touching rects should not intersect")
	}
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
		if d.Reverse().Reverse() != d {
			t.Errorf("Reverse of Reverse(%q) = %q", d, d.Reverse().Reverse())
		}
	}
	if d, ok := ParseDirection(" LEFT "); !ok || d != Left {
		t.Errorf("ParseDirection(LEFT) = %q, %v", d, ok)
	}
	if _, ok := ParseDirection("forward"); ok {
		t.Error("ParseDirection(forward) should fail")
	}
}

func TestRegion(t *testing.T) {
	target := NewRect(10, 10, 10, 10)

	tests := []struct {
		x, y float64
		want int
	}{
		{5, 5, RegionTopLeft},
		{15, 5, RegionTop},
		{25, 5, RegionTopRight},
		{5, 15, RegionLeft},
		{15, 15, RegionCenter},
		{25, 15, RegionRight},
		{5, 25, RegionBottomLeft},
		{15, 25, RegionBottom},
		{25, 25, RegionBottomRight},
		// Centers on the target's edges count as inside.
		{10, 20, RegionCenter},
		{20, 10, RegionCenter},
	}

	for _, tt := range tests {
		r := NewRect(tt.x-1, tt.y-1, 2, 2)
		if got := Region(r, target); got != tt.want {
			t.Errorf("Region(center %v,%v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPartition_EveryCandidateHasOneBaseRegion(t *testing.T) {
	target := NewRect(10, 10, 10, 10)
	var candidates []Candidate[int]
	id := 0
	for x := -10.0; x <= 30; x += 5 {
		for y := -10.0; y <= 30; y += 5 {
			for _, w := range []float64{2, 8, 30} {
				for _, h := range []float64{2, 8, 30} {
					candidates = append(candidates, Candidate[int]{Element: id, Rect: NewRect(x, y, w, h)})
					id++
				}
			}
		}
	}

	groups := Partition(candidates, target, 0.5)

	for _, c := range candidates {
		base := Region(c.Rect, target)
		var seen []int
		for g, members := range groups {
			for _, m := range members {
				if m.Element == c.Element {
					seen = append(seen, g)
				}
			}
		}
		if len(seen) == 0 || len(seen) > 2 {
			t.Fatalf("candidate %d (%+v) appears in %v", c.Element, c.Rect, seen)
		}
		if seen[0] != base && (len(seen) < 2 || seen[1] != base) {
			t.Fatalf("candidate %d not in base region %d: %v", c.Element, base, seen)
		}
		if len(seen) == 2 {
			if _, diagonal := spills[base]; !diagonal {
				t.Fatalf("non-diagonal candidate %d duplicated: %v", c.Element, seen)
			}
			for _, g := range seen {
				if g != base && g%2 != 1 {
					t.Fatalf("candidate %d spilled into non-straight region %d", c.Element, g)
				}
			}
		}
	}
}

func TestPartition_DiagonalSpill(t *testing.T) {
	target := NewRect(10, 10, 10, 10)

	tests := []struct {
		name string
		c    Candidate[string]
		want []int
	}{
		{"short reach stays diagonal", cand("a", 2, 0, 12, 4), []int{RegionTopLeft}},
		{"column reach spills up", cand("b", 0, 0, 16, 4), []int{RegionTopLeft, RegionTop}},
		{"deeper column reach wins", cand("c", 0, 0, 18, 16), []int{RegionTopLeft, RegionTop}},
		{"deeper row reach wins", cand("d", 0, 0, 16, 18), []int{RegionTopLeft, RegionLeft}},
		{"bottom right spills right", cand("e", 22, 14, 6, 16), []int{RegionRight, RegionBottomRight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := Partition([]Candidate[string]{tt.c}, target, 0.5)
			var got []int
			for g, members := range groups {
				if len(members) > 0 {
					got = append(got, g)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("regions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("regions = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDistances_ClampOverlap(t *testing.T) {
	d := DistancesFrom(NewRect(10, 10, 10, 10))

	// Straddles the target's vertical center line.
	straddle := NewRect(12, 0, 6, 4)
	if got := d.NearPlumbLine(straddle); got != 0 {
		t.Errorf("NearPlumbLine(straddle) = %v, want 0", got)
	}

	left := NewRect(0, 12, 5, 5)
	if got := d.NearPlumbLine(left); got != 10 {
		t.Errorf("NearPlumbLine(left) = %v, want 10", got)
	}
	if got := d.NearTargetLeft(left); got != 5 {
		t.Errorf("NearTargetLeft(left) = %v, want 5", got)
	}

	below := NewRect(12, 30, 4, 4)
	if got := d.NearHorizon(below); got != 15 {
		t.Errorf("NearHorizon(below) = %v, want 15", got)
	}
	if got := d.NearTargetTop(below); got != 20 {
		t.Errorf("NearTargetTop(below) = %v, want 20", got)
	}

	overlapping := NewRect(8, 8, 4, 4)
	for name, fn := range map[string]DistanceFunc{
		"NearTargetLeft": d.NearTargetLeft,
		"NearTargetTop":  d.NearTargetTop,
	} {
		if got := fn(overlapping); got != 0 {
			t.Errorf("%s(overlapping) = %v, want 0", name, got)
		}
	}
}

func TestPrioritize(t *testing.T) {
	byLeft := []DistanceFunc{func(r Rect) float64 { return r.Left }}

	if got := Prioritize([]Tier[string]{{}, {}}); got != nil {
		t.Errorf("Prioritize(empty) = %v, want nil", got)
	}

	far := cand("far", 100, 0, 1, 1)
	near := cand("near", 1, 0, 1, 1)
	got := Prioritize([]Tier[string]{
		{Group: nil, Distance: byLeft},
		{Group: []Candidate[string]{far}, Distance: byLeft},
		{Group: []Candidate[string]{near}, Distance: byLeft},
	})
	if len(got) != 1 || got[0].Element != "far" {
		t.Errorf("earlier tier should win regardless of distance, got %v", got)
	}

	// Second key breaks ties of the first; equal keys keep input order.
	a := cand("a", 5, 9, 1, 1)
	b := cand("b", 5, 3, 1, 1)
	c := cand("c", 5, 3, 1, 1)
	got = Prioritize([]Tier[string]{{
		Group: []Candidate[string]{a, b, c},
		Distance: []DistanceFunc{
			func(r Rect) float64 { return r.Left },
			func(r Rect) float64 { return r.Top },
		},
	}})
	order := []string{got[0].Element, got[1].Element, got[2].Element}
	if order[0] != "b" || order[1] != "c" || order[2] != "a" {
		t.Errorf("order = %v, want [b c a]", order)
	}
}

func TestNavigate_Grid(t *testing.T) {
	a := cand("A", 0, 0, 10, 10)
	b := cand("B", 20, 0, 10, 10)
	c := cand("C", 0, 20, 10, 10)
	others := []Candidate[string]{b, c}
	opts := Options[string]{StraightOverlapThreshold: 0.5}

	tests := []struct {
		dir    Direction
		want   string
		wantOK bool
	}{
		{Right, "B", true},
		{Down, "C", true},
		{Left, "", false},
		{Up, "", false},
	}
	for _, tt := range tests {
		got, ok := Navigate(a, tt.dir, others, opts)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Navigate(%s) = %q, %v; want %q, %v", tt.dir, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNavigate_NearestAlongAxisWins(t *testing.T) {
	target := cand("T", 60, 20, 10, 10)
	far := cand("far", 0, 20, 10, 10)
	near := cand("near", 30, 20, 10, 10)
	opts := Options[string]{StraightOverlapThreshold: 0.5}

	got, _ := Navigate(target, Left, []Candidate[string]{far, near}, opts)
	if got != "near" {
		t.Errorf("Navigate(left) = %q, want near", got)
	}
}

func TestNavigate_Deterministic(t *testing.T) {
	target := cand("T", 50, 50, 10, 10)
	cands := []Candidate[string]{
		cand("a", 0, 0, 10, 10),
		cand("b", 100, 0, 10, 10),
		cand("c", 0, 100, 10, 10),
		cand("d", 100, 100, 10, 10),
		cand("e", 49, 0, 12, 10),
	}
	opts := Options[string]{StraightOverlapThreshold: 0.5}
	for _, dir := range Directions {
		first, ok1 := Navigate(target, dir, cands, opts)
		second, ok2 := Navigate(target, dir, cands, opts)
		if first != second || ok1 != ok2 {
			t.Errorf("Navigate(%s) not repeatable: %q vs %q", dir, first, second)
		}
	}
}

func TestNavigate_StraightOnly(t *testing.T) {
	target := cand("T", 20, 20, 10, 10)
	diagonal := cand("D", 0, 0, 5, 5)

	got, ok := Navigate(target, Left, []Candidate[string]{diagonal}, Options[string]{StraightOverlapThreshold: 0.5})
	if !ok || got != "D" {
		t.Errorf("Navigate(left) = %q, %v; want D", got, ok)
	}

	_, ok = Navigate(target, Left, []Candidate[string]{diagonal}, Options[string]{
		StraightOnly:             true,
		StraightOverlapThreshold: 0.5,
	})
	if ok {
		t.Error("straight-only navigation should ignore diagonal candidates")
	}
}

func TestNavigate_DiagonalPrefersNearHorizon(t *testing.T) {
	target := cand("T", 0, 20, 10, 10)
	above := cand("above", 20, 0, 10, 10)
	below := cand("below", 40, 35, 10, 10)

	got, _ := Navigate(target, Right, []Candidate[string]{above, below}, Options[string]{StraightOverlapThreshold: 0.5})
	if got != "below" {
		t.Errorf("Navigate(right) = %q, want below", got)
	}
}

func TestNavigate_InternalGroupsFirst(t *testing.T) {
	target := cand("T", 0, 0, 100, 20)
	inner := cand("inner", 70, 2, 10, 10)
	outer := cand("outer", 110, 0, 10, 10)

	got, _ := Navigate(target, Right, []Candidate[string]{outer, inner}, Options[string]{StraightOverlapThreshold: 0.5})
	if got != "inner" {
		t.Errorf("Navigate(right) = %q, want inner", got)
	}
}

func TestNavigate_RememberSource(t *testing.T) {
	target := cand("T", 20, 10, 10, 10)
	origin := cand("X", 40, 10, 10, 10)
	closer := cand("Y", 35, 12, 10, 10)
	prev := &Previous[string]{Target: "X", Destination: "T", Reverse: Right}

	got, _ := Navigate(target, Right, []Candidate[string]{origin, closer}, Options[string]{
		StraightOverlapThreshold: 0.5,
	})
	if got != "Y" {
		t.Fatalf("without rememberSource got %q, want Y", got)
	}

	got, _ = Navigate(target, Right, []Candidate[string]{origin, closer}, Options[string]{
		StraightOverlapThreshold: 0.5,
		RememberSource:           true,
		Previous:                 prev,
	})
	if got != "X" {
		t.Errorf("with rememberSource got %q, want X", got)
	}

	// A different direction does not reverse the previous move.
	got, _ = Navigate(target, Right, []Candidate[string]{origin, closer}, Options[string]{
		StraightOverlapThreshold: 0.5,
		RememberSource:           true,
		Previous:                 &Previous[string]{Target: "X", Destination: "T", Reverse: Left},
	})
	if got != "Y" {
		t.Errorf("non-reversing move got %q, want Y", got)
	}
}
