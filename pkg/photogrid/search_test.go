package photogrid

import (
	"testing"
	"time"

	"github.com/mhartig/photogrid/pkg/geom"
)

func photoAt(ts string, rating string) PhotoLayoutData {
	md := map[string]string{}
	if ts != "" {
		md["timestamp"] = ts
	}
	if rating != "" {
		md["rating"] = rating
	}
	return PhotoLayoutData{
		AspectRatio: geom.AspectRatio{W: 3, H: 2},
		Metadata:    md,
	}
}

func TestSearchFilter_ZeroMatchesEverything(t *testing.T) {
	var f SearchFilter
	if !f.IsZero() {
		t.Error("zero filter should report IsZero")
	}

	photos := []PhotoLayoutData{
		photoAt("2024-06-01T12:00:00Z", "5"),
		photoAt("", ""),
		photoAt("not-a-time", "not-a-number"),
	}
	got := f.Apply(photos)
	if len(got) != len(photos) {
		t.Errorf("zero filter kept %d of %d photos", len(got), len(photos))
	}
}

func TestSearchFilter_TimeBounds(t *testing.T) {
	f := SearchFilter{
		After:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Before: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		ts   string
		want bool
	}{
		{"inside range", "2024-06-01T12:00:00Z", true},
		{"exactly lower bound", "2024-01-01T00:00:00Z", true},
		{"exactly upper bound", "2024-12-31T00:00:00Z", true},
		{"too early", "2023-12-31T23:59:59Z", false},
		{"too late", "2025-01-01T00:00:00Z", false},
		// Missing or malformed timestamps degrade to the zero time,
		// which fails any lower bound.
		{"missing timestamp", "", false},
		{"malformed timestamp", "yesterday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Matches(photoAt(tt.ts, "")); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestSearchFilter_MinRating(t *testing.T) {
	f := SearchFilter{MinRating: 3}

	if !f.Matches(photoAt("", "4")) {
		t.Error("rating 4 should pass MinRating 3")
	}
	if !f.Matches(photoAt("", "3")) {
		t.Error("rating 3 should pass MinRating 3")
	}
	if f.Matches(photoAt("", "2")) {
		t.Error("rating 2 should fail MinRating 3")
	}
	if f.Matches(photoAt("", "")) {
		t.Error("missing rating defaults to 0 and should fail MinRating 3")
	}
}

func TestSearchFilter_ApplyPreservesOrder(t *testing.T) {
	photos := []PhotoLayoutData{
		photoAt("", "5"),
		photoAt("", "1"),
		photoAt("", "4"),
		photoAt("", "3"),
	}
	got := SearchFilter{MinRating: 3}.Apply(photos)

	want := []string{"5", "4", "3"}
	if len(got) != len(want) {
		t.Fatalf("kept %d photos, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Metadata["rating"] != want[i] {
			t.Errorf("photo %d rating = %q, want %q", i, p.Metadata["rating"], want[i])
		}
	}
}
