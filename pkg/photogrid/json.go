package photogrid

import (
	"encoding/json"
	"fmt"
	"io"
)

// The serialized form carries the ordinal placement lists per
// breakpoint plus the parallel item arena:
//
//	{
//	  "grids": [
//	    {
//	      "placements": [
//	        {"data": 0, "size": {"width": 2, "height": 1}, "origin": {"x": 0, "y": 0}}
//	      ],
//	      "width": 4
//	    }
//	  ],
//	  "data": [ ... items ... ]
//	}
//
// Round-tripping this document reproduces placement bit for bit: the
// grids are stored as computed, never re-packed on load.
type responsiveJSON[T any] struct {
	Grids []breakpointJSON `json:"grids"`
	Data  []T              `json:"data"`
}

type breakpointJSON struct {
	Placements []Content[int] `json:"placements"`
	Width      int            `json:"width"`
}

// MarshalJSON implements json.Marshaler.
func (r ResponsivePhotoGrid[T]) MarshalJSON() ([]byte, error) {
	doc := responsiveJSON[T]{
		Grids: make([]breakpointJSON, len(r.grids)),
		Data:  r.data,
	}
	for i, g := range r.grids {
		doc.Grids[i] = breakpointJSON{Placements: g.Placements, Width: g.Width}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. Placements referencing
// items outside the data array are rejected.
func (r *ResponsivePhotoGrid[T]) UnmarshalJSON(b []byte) error {
	var doc responsiveJSON[T]
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	grids := make([]PhotoGrid[int], len(doc.Grids))
	for i, g := range doc.Grids {
		for _, c := range g.Placements {
			if c.Data < 0 || c.Data >= len(doc.Data) {
				return fmt.Errorf("breakpoint %d references unknown item %d", g.Width, c.Data)
			}
		}
		grids[i] = PhotoGrid[int]{Placements: g.Placements, Width: g.Width}
	}

	r.grids = grids
	r.data = doc.Data
	return nil
}

// WriteJSON encodes the grid to w with indentation, suitable for files
// and HTTP responses.
func WriteJSON[T any](r *ResponsivePhotoGrid[T], w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a grid previously written by [WriteJSON].
// ReadJSON does not close r.
func ReadJSON[T any](rd io.Reader) (*ResponsivePhotoGrid[T], error) {
	var out ResponsivePhotoGrid[T]
	if err := json.NewDecoder(rd).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
