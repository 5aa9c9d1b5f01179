package navigation

import (
	"testing"

	"github.com/lixenwraith/astar-grid/core"
)

func TestObstacles_AddRemoveToggle(t *testing.T) {
	o := NewObstacles(4, 3)

	if !o.Add(core.Pt(1, 1)) {
		t.Error("Expected Add to succeed")
	}
	if o.Add(core.Pt(1, 1)) {
		t.Error("Expected duplicate Add to fail")
	}
	if o.Add(core.Pt(4, 0)) {
		t.Error("Expected out-of-bounds Add to fail")
	}
	if !o.Has(core.Pt(1, 1)) || o.Len() != 1 {
		t.Errorf("Expected one obstacle at (1,1), got %v", o.Points())
	}

	if o.Toggle(core.Pt(1, 1)) {
		t.Error("Expected Toggle to clear an existing obstacle")
	}
	if !o.Toggle(core.Pt(2, 2)) {
		t.Error("Expected Toggle to set a free cell")
	}
	if o.Remove(core.Pt(0, 0)) {
		t.Error("Expected Remove of free cell to fail")
	}
	if o.Has(core.Pt(-1, 0)) {
		t.Error("Expected out-of-bounds cell to be free")
	}
	if o.Len() != 1 {
		t.Errorf("Expected 1 obstacle, got %d", o.Len())
	}
}

func TestObstacles_ReplaceAndEachOrder(t *testing.T) {
	o := NewObstacles(3, 3)
	o.Replace([]core.Point{{X: 2, Y: 2}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 9, Y: 9}})

	want := []core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}}
	got := o.Points()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	o.Clear()
	if o.Len() != 0 || len(o.Points()) != 0 {
		t.Errorf("Expected empty set after Clear, got %v", o.Points())
	}
}

func TestObstacles_Resize(t *testing.T) {
	o := NewObstacles(5, 5)
	o.Add(core.Pt(1, 1))
	o.Add(core.Pt(4, 1))
	o.Add(core.Pt(1, 4))

	o.Resize(3, 6)
	if o.Len() != 2 || !o.Has(core.Pt(1, 1)) || !o.Has(core.Pt(1, 4)) {
		t.Errorf("Expected (1,1) and (1,4) to survive, got %v", o.Points())
	}

	o.Resize(8, 8)
	if !o.Has(core.Pt(1, 4)) {
		t.Error("Expected obstacle to survive growth")
	}
}
