package engine

import (
	"errors"
	"testing"
)

const (
	A TileType = iota
	B
	C
	D
	E
	F
)

// boardOf builds a board from rows of letters, 'A' being type 0.
func boardOf(t *testing.T, rows ...string) *Board {
	t.Helper()
	grid := make([][]TileType, len(rows))
	for y, row := range rows {
		for _, r := range row {
			grid[y] = append(grid[y], TileType(r-'A'))
		}
	}
	b, err := BoardFromRows(grid)
	if err != nil {
		t.Fatalf("BoardFromRows() error = %v", err)
	}
	return b
}

func TestNewBoardInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("NewBoard(%d, %d) error = %v, want ErrInvalidSize", tt.w, tt.h, err)
			}
		})
	}
}

func TestBoardFromRowsRagged(t *testing.T) {
	_, err := BoardFromRows([][]TileType{{A, B, C}, {A, B}})
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("BoardFromRows() error = %v, want ErrInvalidSize", err)
	}
}

func TestBoardGetSet(t *testing.T) {
	b := boardOf(t, "ABC", "DEF")

	got, err := b.Get(P(2, 1))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != F {
		t.Errorf("Get(2,1) = %v, want %v", got, F)
	}

	if err := b.Set(P(0, 1), A); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := b.Get(P(0, 1)); got != A {
		t.Errorf("Get(0,1) after Set = %v, want %v", got, A)
	}
}

func TestBoardOutOfRange(t *testing.T) {
	b := boardOf(t, "ABC", "DEF")
	before := b.Clone()

	for _, p := range []Position{P(-1, 0), P(3, 0), P(0, 2), P(0, -1)} {
		if _, err := b.Get(p); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Get(%v) error = %v, want ErrOutOfRange", p, err)
		}
		if err := b.Set(p, A); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%v) error = %v, want ErrOutOfRange", p, err)
		}
		if err := b.Swap(P(0, 0), p); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Swap(%v) error = %v, want ErrOutOfRange", p, err)
		}
	}

	if !b.Equal(before) {
		t.Errorf("board changed after failed operations:\n%s", b)
	}
}

func TestBoardSwapDoesNotCheckAdjacency(t *testing.T) {
	b := boardOf(t, "ABC", "DEF")
	if err := b.Swap(P(0, 0), P(2, 1)); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}
	want := boardOf(t, "FBC", "DEA")
	if !b.Equal(want) {
		t.Errorf("board after Swap =\n%s\nwant\n%s", b, want)
	}
}

func TestBoardNeighbors(t *testing.T) {
	b := boardOf(t, "ABC", "DEF", "ABC")

	tests := []struct {
		p    Position
		want []Position
	}{
		{P(1, 1), []Position{P(1, 0), P(2, 1), P(1, 2), P(0, 1)}},
		{P(0, 0), []Position{P(1, 0), P(0, 1)}},
		{P(2, 2), []Position{P(2, 1), P(1, 2)}},
		{P(5, 5), nil},
	}
	for _, tt := range tests {
		got := b.Neighbors(tt.p)
		if len(got) != len(tt.want) {
			t.Errorf("Neighbors(%v) = %v, want %v", tt.p, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Neighbors(%v) = %v, want %v", tt.p, got, tt.want)
				break
			}
		}
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := boardOf(t, "AB", "CD")
	c := b.Clone()
	_ = c.Set(P(0, 0), D)

	if got, _ := b.Get(P(0, 0)); got != A {
		t.Errorf("original changed through clone: Get(0,0) = %v", got)
	}
	if b.Equal(c) {
		t.Error("Equal() = true for different boards")
	}
}

func TestBoardRowsCopy(t *testing.T) {
	b := boardOf(t, "ABC", "DEF")
	rows := b.Rows()
	if len(rows) != 2 || len(rows[1]) != 3 || rows[1][0] != D || rows[0][2] != C {
		t.Fatalf("Rows() = %v", rows)
	}

	rows[0][0] = F
	if got, _ := b.Get(P(0, 0)); got != A {
		t.Errorf("board changed through Rows(): Get(0,0) = %v", got)
	}
}

func TestBoardString(t *testing.T) {
	b := boardOf(t, "ABC", "DEF")
	want := "0 1 2\n3 4 5"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPositionAdjacent(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{P(1, 1), P(1, 2), true},
		{P(1, 1), P(0, 1), true},
		{P(1, 1), P(2, 2), false},
		{P(1, 1), P(1, 1), false},
		{P(0, 0), P(0, 2), false},
	}
	for _, tt := range tests {
		if got := tt.a.Adjacent(tt.b); got != tt.want {
			t.Errorf("%v.Adjacent(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		want    error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"two types", Catalog{A, B, A}, ErrCatalogTooSmall},
		{"three types", Catalog{A, B, C}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
