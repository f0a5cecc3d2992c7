package core

import (
	"errors"
	"testing"
)

func TestNewGridValidatesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -3}} {
		if _, err := NewGrid(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("NewGrid(%d, %d): err = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
	g, err := NewGrid(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Cells()) != 6 {
		t.Fatalf("len(Cells()) = %d, want 6", len(g.Cells()))
	}
}

func TestGridFromCellsCopies(t *testing.T) {
	src := []uint8{1, 2, 3, 4, 5, 6}
	g, err := GridFromCells(3, 2, src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 9
	if v, _ := g.Get(0, 0); v != 1 {
		t.Fatalf("grid shares the caller's buffer: got %d, want 1", v)
	}
	if _, err := GridFromCells(3, 2, []uint8{1, 2}); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("short buffer: err = %v, want ErrSizeMismatch", err)
	}
}

func TestGetSetBounds(t *testing.T) {
	g, _ := NewGrid(4, 3)
	if err := g.Set(3, 2, 7); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(3, 2); v != 7 {
		t.Fatalf("Get(3, 2) = %d, want 7", v)
	}
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		if err := g.Set(p[0], p[1], 1); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Set(%d, %d): err = %v, want ErrOutOfRange", p[0], p[1], err)
		}
		if _, err := g.Get(p[0], p[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Get(%d, %d): err = %v, want ErrOutOfRange", p[0], p[1], err)
		}
	}
	for _, v := range g.Cells() {
		if v != 0 && v != 7 {
			t.Fatalf("failed Set modified the grid: found %d", v)
		}
	}
}

func TestCloneIsDetached(t *testing.T) {
	g, _ := NewGrid(3, 3)
	g.Set(1, 1, 5)
	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone differs from source")
	}
	c.Set(0, 0, 1)
	if v, _ := g.Get(0, 0); v != 0 {
		t.Fatal("writing the clone modified the source")
	}
}

func TestCopyFromAndLoadCells(t *testing.T) {
	g, _ := NewGrid(2, 2)
	other, _ := NewGrid(2, 2)
	other.Set(1, 1, 3)
	if err := g.CopyFrom(other); err != nil {
		t.Fatal(err)
	}
	if !g.Equal(other) {
		t.Fatal("CopyFrom left grids unequal")
	}
	wrong, _ := NewGrid(3, 3)
	if err := g.CopyFrom(wrong); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("CopyFrom wrong size: err = %v, want ErrSizeMismatch", err)
	}
	if err := g.LoadCells([]uint8{1, 2, 3}); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("LoadCells wrong size: err = %v, want ErrSizeMismatch", err)
	}
	if err := g.LoadCells([]uint8{9, 8, 7, 6}); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(0, 1); v != 7 {
		t.Fatalf("Get(0, 1) = %d, want 7", v)
	}
}

func TestClearAndEqual(t *testing.T) {
	g, _ := NewGrid(3, 3)
	g.Set(2, 2, 1)
	g.Clear()
	for _, v := range g.Cells() {
		if v != 0 {
			t.Fatal("Clear left a nonzero cell")
		}
	}
	narrow, _ := NewGrid(3, 2)
	if g.Equal(narrow) {
		t.Fatal("grids of different dimensions reported equal")
	}
}

func TestFillSoupDeterministic(t *testing.T) {
	a := make([]uint8, 1000)
	b := make([]uint8, 1000)
	FillSoup(NewRNG(7), a, 0.15)
	FillSoup(NewRNG(7), b, 0.15)
	live := 0
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different soups")
		}
		if a[i] == 1 {
			live++
		}
	}
	// 15% of 1000 cells, with generous slack.
	if live < 100 || live > 220 {
		t.Fatalf("soup density off: %d live cells of 1000", live)
	}
}
