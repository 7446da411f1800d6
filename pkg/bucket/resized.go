package bucket

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/mhartig/photogrid/pkg/geom"
	"github.com/mhartig/photogrid/pkg/httputil"
	"github.com/mhartig/photogrid/pkg/photogrid"
)

// aspectRatioHeader carries an object's pixel dimensions as W:H,
// written by the resizing pipeline.
const aspectRatioHeader = "X-Amz-Meta-Aspect-Ratio"

// ListResized lists every resized variant under the configured prefix
// and assembles one photo descriptor per source image. Variants are
// grouped by basename; each group is sorted and emitted in basename
// order so repeated listings produce the same photo order.
//
// Objects without a parseable aspect-ratio metadata header are skipped,
// and a group whose every variant is skipped is dropped. A missing
// header means the resizing pipeline has not processed the object yet.
func (c *Client) ListResized(ctx context.Context) ([]photogrid.PhotoLayoutData, error) {
	cacheKey := "listing:" + c.cfg.Endpoint + "/" + c.cfg.Prefix
	if c.cache != nil {
		var cached []photogrid.PhotoLayoutData
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	objects, err := c.ListRecursive(ctx, c.cfg.Prefix)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]Object)
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		name := path.Base(obj.Key)
		groups[name] = append(groups[name], obj)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	photos := make([]photogrid.PhotoLayoutData, 0, len(names))
	for _, name := range names {
		group := groups[name]
		sort.Slice(group, func(i, j int) bool { return group[i].Key < group[j].Key })

		var srcs []photogrid.SrcSet
		for _, obj := range group {
			ratio, err := c.objectRatio(ctx, obj.Key)
			if err != nil {
				continue
			}
			srcs = append(srcs, photogrid.SrcSet{
				Dimensions: geom.Dimension{W: ratio.W, H: ratio.H},
				URL:        c.objectURL(obj.Key),
			})
		}
		if len(srcs) == 0 {
			continue
		}

		photos = append(photos, photogrid.PhotoLayoutData{
			AspectRatio: geom.AspectRatio{W: srcs[0].Dimensions.W, H: srcs[0].Dimensions.H}.Reduced(),
			Srcs:        srcs,
			Metadata:    map[string]string{"name": name},
		})
	}

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, photos)
	}
	return photos, nil
}

// objectURL builds the public URL for an object, substituting the
// configured CDN host when one is set.
func (c *Client) objectURL(key string) string {
	if c.cfg.PublicHost == "" {
		return c.cfg.Endpoint + "/" + key
	}
	return "https://" + c.cfg.PublicHost + "/" + key
}

// objectRatio reads an object's pixel dimensions from its metadata via
// a HEAD request.
func (c *Client) objectRatio(ctx context.Context, key string) (geom.AspectRatio, error) {
	var ratio geom.AspectRatio
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.cfg.Endpoint+"/"+key, nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		resp.Body.Close()
		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}

		raw := resp.Header.Get(aspectRatioHeader)
		if raw == "" {
			return fmt.Errorf("object %s has no aspect-ratio metadata", key)
		}
		ratio, err = geom.ParseAspectRatio(raw)
		if err != nil {
			return fmt.Errorf("object %s aspect-ratio metadata: %w", key, err)
		}
		return nil
	})
	return ratio, err
}
