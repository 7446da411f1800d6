package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/mhartig/photogrid/pkg/pipeline"
)

func TestParseFilterTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-06-01T12:30:00Z", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"not a time", time.Time{}},
	}

	for _, tc := range cases {
		if got := parseFilterTime(tc.in); !got.Equal(tc.want) {
			t.Errorf("parseFilterTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFilterFlagsToSearchFilter(t *testing.T) {
	f := filterFlags{after: "2024-01-01", minRating: 3}
	sf := f.toSearchFilter()

	if sf.After.IsZero() {
		t.Error("After should be set")
	}
	if !sf.Before.IsZero() {
		t.Error("Before should be unset")
	}
	if sf.MinRating != 3 {
		t.Errorf("MinRating = %d, want 3", sf.MinRating)
	}
}

func TestMergeLayoutConfig(t *testing.T) {
	cfg := Config{
		Layout: LayoutConfig{
			Breakpoints: []int{4, 8},
			ShortEdge:   3,
			Rounding:    "half",
		},
	}

	t.Run("fills unset options", func(t *testing.T) {
		opts := pipeline.Options{}
		mergeLayoutConfig(&opts, cfg)
		if len(opts.Breakpoints) != 2 || opts.ShortEdge != 3 || opts.Rounding != "half" {
			t.Errorf("config not applied: %+v", opts)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		opts := pipeline.Options{Breakpoints: []int{12}, ShortEdge: 2, Rounding: "up"}
		mergeLayoutConfig(&opts, cfg)
		if len(opts.Breakpoints) != 1 || opts.Breakpoints[0] != 12 {
			t.Errorf("flag breakpoints overridden: %v", opts.Breakpoints)
		}
		if opts.ShortEdge != 2 || opts.Rounding != "up" {
			t.Errorf("flag options overridden: %+v", opts)
		}
	})
}

func TestReadPhotos(t *testing.T) {
	input := `[
		{"aspect_ratio": {"width": 3, "height": 2}, "srcs": [], "metadata": {"rating": "4"}},
		{"aspect_ratio": {"width": 2, "height": 3}, "srcs": null, "metadata": null}
	]`

	photos, err := readPhotos(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readPhotos() error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(photos))
	}
	if photos[0].AspectRatio.W != 3 || photos[0].AspectRatio.H != 2 {
		t.Errorf("photo 0 ratio = %v", photos[0].AspectRatio)
	}
	if photos[0].Rating() != 4 {
		t.Errorf("photo 0 rating = %d, want 4", photos[0].Rating())
	}
	if photos[1].Rating() != 0 {
		t.Errorf("photo 1 rating should default to 0, got %d", photos[1].Rating())
	}
}

func TestReadPhotosMalformed(t *testing.T) {
	if _, err := readPhotos(strings.NewReader("{not json")); err == nil {
		t.Error("readPhotos() should fail on malformed input")
	}
}
