package geom

import (
	"errors"
	"testing"
)

func TestParseAspectRatio_Valid(t *testing.T) {
	got, err := ParseAspectRatio("16:9")
	if err != nil {
		t.Fatalf("ParseAspectRatio() error = %v", err)
	}
	if got != (AspectRatio{W: 16, H: 9}) {
		t.Errorf("ParseAspectRatio() = %v, want 16:9", got)
	}
}

func TestParseAspectRatio_MissingSeparator(t *testing.T) {
	_, err := ParseAspectRatio("169")
	if !errors.Is(err, ErrSeparator) {
		t.Errorf("error = %v, want ErrSeparator", err)
	}
}

func TestParseAspectRatio_DuplicateSeparator(t *testing.T) {
	_, err := ParseAspectRatio("16:9:4")
	if !errors.Is(err, ErrSeparator) {
		t.Errorf("error = %v, want ErrSeparator", err)
	}
}

func TestParseAspectRatio_NonInteger(t *testing.T) {
	for _, s := range []string{"a:9", "16:b", ":9", "16:", "1.5:9", "-1:9"} {
		_, err := ParseAspectRatio(s)
		if !errors.Is(err, ErrInteger) {
			t.Errorf("ParseAspectRatio(%q) error = %v, want ErrInteger", s, err)
		}
	}
}

func TestParseDimension_Valid(t *testing.T) {
	got, err := ParseDimension("1920x1080")
	if err != nil {
		t.Fatalf("ParseDimension() error = %v", err)
	}
	if got != (Dimension{W: 1920, H: 1080}) {
		t.Errorf("ParseDimension() = %v, want 1920x1080", got)
	}
}

func TestParseDimension_TrailingContent(t *testing.T) {
	_, err := ParseDimension("1920x1080x3")
	if !errors.Is(err, ErrSeparator) {
		t.Errorf("error = %v, want ErrSeparator", err)
	}
}

func TestParseDimension_RoundTrip(t *testing.T) {
	d := Dimension{W: 856, H: 1280}
	got, err := ParseDimension(d.String())
	if err != nil {
		t.Fatalf("ParseDimension(%q) error = %v", d.String(), err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}
