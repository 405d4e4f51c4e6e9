package grid

import (
	"errors"
	"testing"
)

func TestFacingAxis(t *testing.T) {
	tests := []struct {
		facing Facing
		axis   Axis
	}{
		{North, Vertical},
		{South, Vertical},
		{East, Horizontal},
		{West, Horizontal},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String(), func(t *testing.T) {
			if got := tt.facing.Axis(); got != tt.axis {
				t.Errorf("%v.Axis() = %v, want %v", tt.facing, got, tt.axis)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	for _, a := range Facings {
		for _, b := range Facings {
			want := a.Axis() == b.Axis()
			if got := Compatible(a, b); got != want {
				t.Errorf("Compatible(%v, %v) = %v, want %v", a, b, got, want)
			}
			if Compatible(a, b) != Compatible(b, a) {
				t.Errorf("Compatible(%v, %v) is not symmetric", a, b)
			}
		}
	}

	if !Compatible(North, South) {
		t.Error("north and south should be compatible")
	}
	if Compatible(North, East) {
		t.Error("north and east should not be compatible")
	}
}

func TestAdjacent(t *testing.T) {
	origin := Point{X: 3, Y: 4, Z: 2}

	tests := []struct {
		facing Facing
		want   [2]Point
	}{
		{North, [2]Point{{X: 3, Y: 5, Z: 2}, {X: 3, Y: 3, Z: 2}}},
		{South, [2]Point{{X: 3, Y: 5, Z: 2}, {X: 3, Y: 3, Z: 2}}},
		{East, [2]Point{{X: 4, Y: 4, Z: 2}, {X: 2, Y: 4, Z: 2}}},
		{West, [2]Point{{X: 4, Y: 4, Z: 2}, {X: 2, Y: 4, Z: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String(), func(t *testing.T) {
			if got := Adjacent(origin, tt.facing); got != tt.want {
				t.Errorf("Adjacent(%v, %v) = %v, want %v", origin, tt.facing, got, tt.want)
			}
		})
	}
}

func TestParseFacing(t *testing.T) {
	tests := []struct {
		input   string
		want    Facing
		wantErr bool
	}{
		{"north", North, false},
		{"NORTH", North, false},
		{"n", North, false},
		{" south ", South, false},
		{"East", East, false},
		{"w", West, false},
		{"up", North, true},
		{"", North, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFacing(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFacing(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFacing(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFacingTextRoundTrip(t *testing.T) {
	for _, f := range Facings {
		text, err := f.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", f, err)
		}
		var back Facing
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != f {
			t.Errorf("round trip of %v gave %v", f, back)
		}
	}

	if _, err := Facing(9).MarshalText(); !errors.Is(err, ErrInvalidFacing) {
		t.Errorf("MarshalText(9) error = %v, want ErrInvalidFacing", err)
	}
	var f Facing
	if err := f.UnmarshalText([]byte("up")); !errors.Is(err, ErrInvalidFacing) {
		t.Errorf("UnmarshalText(up) error = %v, want ErrInvalidFacing", err)
	}
}

func TestRotateAndOpposite(t *testing.T) {
	f := North
	for i := 0; i < 4; i++ {
		f = f.Rotate()
	}
	if f != North {
		t.Errorf("four rotations should return to north, got %v", f)
	}
	if East.Rotate() != South {
		t.Errorf("East.Rotate() = %v, want south", East.Rotate())
	}

	for _, f := range Facings {
		if f.Opposite().Opposite() != f {
			t.Errorf("%v.Opposite().Opposite() = %v", f, f.Opposite().Opposite())
		}
		if !Compatible(f, f.Opposite()) {
			t.Errorf("%v and its opposite should share an axis", f)
		}
		if Compatible(f, f.Rotate()) {
			t.Errorf("%v and its rotation should not share an axis", f)
		}
	}
}

func TestInvalidFacingIsUnchanged(t *testing.T) {
	bad := Facing(9)
	if bad.Valid() {
		t.Fatal("Facing(9) should be invalid")
	}
	if got := bad.Rotate(); got != bad {
		t.Errorf("Rotate() = %v, want %v", got, bad)
	}
	if got := bad.Opposite(); got != bad {
		t.Errorf("Opposite() = %v, want %v", got, bad)
	}
	if got := Facing(-1).Rotate(); got != Facing(-1) {
		t.Errorf("Facing(-1).Rotate() = %v", got)
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	if got := p.Add(Pt(-1, 1)); got != (Point{X: 0, Y: 3, Z: 3}) {
		t.Errorf("Add = %v", got)
	}
	if p.String() != "(1,2,3)" || Pt(4, 5).String() != "(4,5)" {
		t.Errorf("String() = %s, %s", p, Pt(4, 5))
	}
}
