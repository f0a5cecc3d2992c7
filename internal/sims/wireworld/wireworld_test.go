package wireworld_test

import (
	"testing"

	"lifegrid/internal/backend"
	"lifegrid/internal/boundary"
	"lifegrid/internal/sims/wireworld"
)

func newWire(t *testing.T) *wireworld.Wire {
	t.Helper()
	w, err := wireworld.New(5, 5, boundary.Fixed{}, backend.NewCPU())
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestHeadDecaysThroughTail(t *testing.T) {
	w := newWire(t)
	if err := w.SetCell(2, 2, wireworld.Head); err != nil {
		t.Fatal(err)
	}
	gw := w.Size().W
	w.Step()
	if got := w.Cells()[2*gw+2]; got != wireworld.Tail {
		t.Fatalf("after step 1: state = %d, want tail", got)
	}
	w.Step()
	if got := w.Cells()[2*gw+2]; got != wireworld.Conductor {
		t.Fatalf("after step 2: state = %d, want conductor", got)
	}
	w.Step()
	if got := w.Cells()[2*gw+2]; got != wireworld.Conductor {
		t.Fatalf("after step 3: state = %d, want conductor (no head neighbors)", got)
	}
}

func TestConductorFiresOnOneOrTwoHeads(t *testing.T) {
	cases := []struct {
		heads int
		want  uint8
	}{
		{1, wireworld.Head},
		{2, wireworld.Head},
		{3, wireworld.Conductor},
	}
	headCells := [][2]int{{1, 1}, {3, 1}, {1, 3}}
	for _, tc := range cases {
		w := newWire(t)
		if err := w.SetCell(2, 2, wireworld.Conductor); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < tc.heads; i++ {
			if err := w.SetCell(headCells[i][0], headCells[i][1], wireworld.Head); err != nil {
				t.Fatal(err)
			}
		}
		w.Step()
		gw := w.Size().W
		if got := w.Cells()[2*gw+2]; got != tc.want {
			t.Fatalf("%d head neighbors: state = %d, want %d", tc.heads, got, tc.want)
		}
	}
}

func TestSignalTravelsAlongWire(t *testing.T) {
	w := newWire(t)
	// A straight conductor with a head at the left end.
	for x := 0; x < 5; x++ {
		if err := w.SetCell(x, 2, wireworld.Conductor); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.SetCell(0, 2, wireworld.Head); err != nil {
		t.Fatal(err)
	}
	gw := w.Size().W
	for x := 1; x < 5; x++ {
		w.Step()
		if got := w.Cells()[2*gw+x]; got != wireworld.Head {
			t.Fatalf("after step %d: cell (%d,2) = %d, want head", x, x, got)
		}
	}
}

func TestEmptyStaysEmpty(t *testing.T) {
	w := newWire(t)
	if err := w.SetCell(1, 1, wireworld.Head); err != nil {
		t.Fatal(err)
	}
	w.Step()
	gw := w.Size().W
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 1 && y == 1 {
				continue
			}
			if got := w.Cells()[y*gw+x]; got != wireworld.Empty {
				t.Fatalf("empty cell (%d,%d) became %d", x, y, got)
			}
		}
	}
}
