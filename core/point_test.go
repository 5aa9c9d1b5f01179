package core

import "testing"

func TestIndexRoundTrip(t *testing.T) {
	for _, width := range []int{1, 3, 10, 40} {
		for y := 0; y < 7; y++ {
			for x := 0; x < width; x++ {
				p := Pt(x, y)
				if got := FromIndex(width, ToIndex(width, p)); got != p {
					t.Fatalf("Width %d: expected %v, got %v", width, p, got)
				}
			}
		}
	}
}

func TestToIndex(t *testing.T) {
	if got := ToIndex(40, Pt(3, 2)); got != 83 {
		t.Errorf("Expected 83, got %d", got)
	}
	if got := FromIndex(40, 83); got != Pt(3, 2) {
		t.Errorf("Expected (3,2), got %v", got)
	}
}

func TestPoint(t *testing.T) {
	p := Pt(2, 3)
	if !p.Equal(Point{X: 2, Y: 3}) || p.Equal(Pt(3, 2)) {
		t.Error("Equal is not component-wise")
	}
	if got := p.Add(Pt(-1, 1)); got != Pt(1, 4) {
		t.Errorf("Expected (1,4), got %v", got)
	}
	if !p.In(3, 4) || p.In(2, 4) || Pt(-1, 0).In(5, 5) {
		t.Error("In bounds check is wrong")
	}
	if p.String() != "(2,3)" {
		t.Errorf("Expected (2,3), got %s", p.String())
	}
}

func TestArea(t *testing.T) {
	a := AreaBetween(Pt(4, 1), Pt(2, 3))
	if a != (Area{X: 2, Y: 1, Width: 3, Height: 3}) {
		t.Fatalf("Unexpected area %+v", a)
	}
	if !a.Contains(Pt(4, 3)) || a.Contains(Pt(5, 3)) {
		t.Error("Contains is off by one")
	}

	count := 0
	a.Each(func(Point) { count++ })
	if count != 9 {
		t.Errorf("Expected 9 cells, got %d", count)
	}

	clipped := Area{X: -2, Y: 3, Width: 5, Height: 5}.Clip(2, 5)
	if clipped != (Area{X: 0, Y: 3, Width: 2, Height: 2}) {
		t.Errorf("Unexpected clip %+v", clipped)
	}
	if !(Area{X: 6, Y: 0, Width: 2, Height: 2}).Clip(5, 5).Empty() {
		t.Error("Expected area outside grid to clip to empty")
	}
}
