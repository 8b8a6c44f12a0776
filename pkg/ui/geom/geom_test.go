package geom

import "testing"

func TestRect_Intersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 3, 2, 2), NewRect(2, 3, 2, 2)},
		{"disjoint", NewRect(0, 0, 2, 2), NewRect(5, 5, 2, 2), Rect{}},
		{"touching", NewRect(0, 0, 2, 2), NewRect(2, 0, 2, 2), Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersection(tt.b); got != tt.want {
				t.Errorf("Intersection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect_Inset(t *testing.T) {
	r := NewRect(1, 1, 10, 20).Inset(1, 1, 1, 1)
	if r != NewRect(2, 2, 8, 18) {
		t.Errorf("Inset() = %v", r)
	}

	// Over-inset never produces negative extents
	r = NewRect(0, 0, 1, 1).Inset(1, 1, 1, 1)
	if r.Rows != 0 || r.Cols != 0 {
		t.Errorf("Inset() extent = %v, want 0x0", r.Extent)
	}
}

func TestRect_Center(t *testing.T) {
	got := NewRect(0, 0, 24, 80).Center(Extent{Rows: 4, Cols: 20})
	if got != NewRect(10, 30, 4, 20) {
		t.Errorf("Center() = %v", got)
	}

	// Too large is clipped to the outer rect
	got = NewRect(0, 0, 5, 5).Center(Extent{Rows: 10, Cols: 10})
	if got != NewRect(0, 0, 5, 5) {
		t.Errorf("Center() oversize = %v", got)
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(2, 2, 3, 3)
	if !r.Contains(2, 2) || !r.Contains(4, 4) {
		t.Error("edges should be inside")
	}
	if r.Contains(5, 2) || r.Contains(2, 5) || r.Contains(1, 2) {
		t.Error("outside cells reported inside")
	}
}
