package geom

import "testing"

func TestDimension_AspectRatio_Reduces(t *testing.T) {
	d := Dimension{W: 3600, H: 2400}
	got := d.AspectRatio()
	want := AspectRatio{W: 3, H: 2}
	if got != want {
		t.Errorf("AspectRatio() = %v, want %v", got, want)
	}
}

func TestDimension_AspectRatio_Coprime(t *testing.T) {
	d := Dimension{W: 3600, H: 2401}
	got := d.AspectRatio()
	want := AspectRatio{W: 3600, H: 2401}
	if got != want {
		t.Errorf("AspectRatio() = %v, want %v", got, want)
	}
}

func TestAspectRatio_String(t *testing.T) {
	r := AspectRatio{W: 16, H: 9}
	if got := r.String(); got != "16:9" {
		t.Errorf("String() = %q, want %q", got, "16:9")
	}
}

func TestDimension_String(t *testing.T) {
	d := Dimension{W: 1920, H: 1080}
	if got := d.String(); got != "1920x1080" {
		t.Errorf("String() = %q, want %q", got, "1920x1080")
	}
}

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want Orientation
	}{
		{"wide", Dimension{W: 4, H: 2}, Landscape},
		{"tall", Dimension{W: 2, H: 4}, Portrait},
		{"square", Dimension{W: 3, H: 3}, Landscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrientationOf(tt.size); got != tt.want {
				t.Errorf("OrientationOf(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestAspectRatio_Reduced_ZeroComponent(t *testing.T) {
	r := AspectRatio{W: 0, H: 5}
	if got := r.Reduced(); got != (AspectRatio{W: 0, H: 1}) {
		t.Errorf("Reduced() = %v, want 0:1", got)
	}
}
