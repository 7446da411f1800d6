package bucket

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhartig/photogrid/pkg/geom"
)

// fakeBucket serves a canned ListObjectsV2 tree:
//
//	resized/400/a.jpg  (400:600)
//	resized/400/b.jpg  (600:400)
//	resized/800/a.jpg  (800:1200)
type fakeBucket struct {
	ratios map[string]string
	heads  int
	lists  int
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		ratios: map[string]string{
			"resized/400/a.jpg": "400:600",
			"resized/400/b.jpg": "600:400",
			"resized/800/a.jpg": "800:1200",
		},
	}
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		f.heads++
		key := strings.TrimPrefix(r.URL.Path, "/")
		ratio, ok := f.ratios[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("X-Amz-Meta-Aspect-Ratio", ratio)
		w.WriteHeader(http.StatusOK)
		return
	}

	f.lists++
	prefix := r.URL.Query().Get("prefix")
	switch prefix {
	case "resized/":
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <IsTruncated>false</IsTruncated>
  <CommonPrefixes><Prefix>resized/400/</Prefix></CommonPrefixes>
  <CommonPrefixes><Prefix>resized/800/</Prefix></CommonPrefixes>
</ListBucketResult>`)
	case "resized/400/":
		// Paginated: first page truncated, second carries the rest.
		if r.URL.Query().Get("continuation-token") == "" {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <IsTruncated>true</IsTruncated>
  <NextContinuationToken>page2</NextContinuationToken>
  <Contents><Key>resized/400/a.jpg</Key><Size>1000</Size></Contents>
</ListBucketResult>`)
		} else {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>resized/400/b.jpg</Key><Size>1100</Size></Contents>
</ListBucketResult>`)
		}
	case "resized/800/":
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>resized/800/a.jpg</Key><Size>2000</Size></Contents>
</ListBucketResult>`)
	default:
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult><IsTruncated>false</IsTruncated></ListBucketResult>`)
	}
}

func TestListRecursive(t *testing.T) {
	fake := newFakeBucket()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, nil)
	objects, err := c.ListRecursive(context.Background(), "resized/")
	if err != nil {
		t.Fatalf("ListRecursive error: %v", err)
	}

	want := map[string]bool{
		"resized/400/a.jpg": true,
		"resized/400/b.jpg": true,
		"resized/800/a.jpg": true,
	}
	if len(objects) != len(want) {
		t.Fatalf("got %d objects, want %d", len(objects), len(want))
	}
	for _, obj := range objects {
		if !want[obj.Key] {
			t.Errorf("unexpected object %q", obj.Key)
		}
	}
}

func TestListResized_GroupsVariantsByBasename(t *testing.T) {
	fake := newFakeBucket()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, PublicHost: "cdn.example.com"}, nil)
	photos, err := c.ListResized(context.Background())
	if err != nil {
		t.Fatalf("ListResized error: %v", err)
	}

	if len(photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(photos))
	}

	// Basename order: a.jpg before b.jpg
	a := photos[0]
	if a.Metadata["name"] != "a.jpg" {
		t.Errorf("photo 0 name = %q, want a.jpg", a.Metadata["name"])
	}
	if len(a.Srcs) != 2 {
		t.Fatalf("a.jpg has %d variants, want 2", len(a.Srcs))
	}
	if a.Srcs[0].URL != "https://cdn.example.com/resized/400/a.jpg" {
		t.Errorf("variant URL = %q, want CDN host substituted", a.Srcs[0].URL)
	}
	if a.Srcs[1].Dimensions != (geom.Dimension{W: 800, H: 1200}) {
		t.Errorf("variant dimensions = %v, want 800x1200", a.Srcs[1].Dimensions)
	}
	if a.AspectRatio != (geom.AspectRatio{W: 2, H: 3}) {
		t.Errorf("a.jpg ratio = %v, want 2:3", a.AspectRatio)
	}

	b := photos[1]
	if b.Metadata["name"] != "b.jpg" {
		t.Errorf("photo 1 name = %q, want b.jpg", b.Metadata["name"])
	}
	if b.AspectRatio != (geom.AspectRatio{W: 3, H: 2}) {
		t.Errorf("b.jpg ratio = %v, want 3:2", b.AspectRatio)
	}
}

func TestListResized_SkipsObjectsWithoutMetadata(t *testing.T) {
	fake := newFakeBucket()
	delete(fake.ratios, "resized/400/b.jpg")
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, nil)
	photos, err := c.ListResized(context.Background())
	if err != nil {
		t.Fatalf("ListResized error: %v", err)
	}

	for _, p := range photos {
		if p.Metadata["name"] == "b.jpg" {
			t.Error("b.jpg should be dropped when its only variant lacks metadata")
		}
	}
	if len(photos) != 1 {
		t.Errorf("got %d photos, want 1", len(photos))
	}
}

func TestClient_ServerErrorsAreRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult><IsTruncated>false</IsTruncated></ListBucketResult>`)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL}, nil)
	if _, err := c.ListRecursive(context.Background(), "resized/"); err != nil {
		t.Fatalf("ListRecursive should recover from a transient 500: %v", err)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
}
