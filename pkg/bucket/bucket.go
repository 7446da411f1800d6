// Package bucket lists resized photo objects from an S3-compatible
// bucket over the ListObjectsV2 REST API.
//
// The bucket is expected to hold resized variants under a common
// prefix, one directory per target width:
//
//	resized/400/IMG_0001.jpg
//	resized/800/IMG_0001.jpg
//	resized/1600/IMG_0001.jpg
//
// Variants of the same photo share a basename. Each object carries its
// pixel dimensions in the x-amz-meta-aspect-ratio metadata header,
// written by the resizing pipeline. [Client.ListResized] walks the
// prefix tree, groups variants by basename, and assembles the photo
// descriptors the layout engine consumes.
//
// Requests are unsigned; the endpoint must be a public bucket or a
// fronting proxy that injects credentials.
package bucket

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mhartig/photogrid/pkg/httputil"
)

// Sentinel errors for bucket operations.
var (
	// ErrNotFound is returned when the bucket or an object does not exist.
	ErrNotFound = fmt.Errorf("not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = fmt.Errorf("network error")
)

// Config describes the bucket to list.
type Config struct {
	// Endpoint is the bucket's base URL, e.g.
	// https://accountid.r2.cloudflarestorage.com/photos or any
	// S3-compatible listing endpoint.
	Endpoint string

	// PublicHost is the host substituted into object URLs, typically a
	// CDN in front of the bucket. If empty, URLs point at the endpoint.
	PublicHost string

	// Prefix is the listing root. Defaults to "resized/".
	Prefix string
}

// DefaultPrefix is the listing root used when Config.Prefix is empty.
const DefaultPrefix = "resized/"

// Client lists bucket contents with retries and optional response
// caching.
type Client struct {
	http  *http.Client
	cache *httputil.Cache
	cfg   Config
}

// NewClient creates a bucket client. Pass a nil cache to disable
// listing caching.
func NewClient(cfg Config, cache *httputil.Cache) *Client {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: cache,
		cfg:   cfg,
	}
}

// Object is one bucket object from a listing.
type Object struct {
	Key          string    `xml:"Key" json:"key"`
	Size         int64     `xml:"Size" json:"size"`
	LastModified time.Time `xml:"LastModified" json:"last_modified"`
}

// listBucketResult is one page of a ListObjectsV2 response.
type listBucketResult struct {
	XMLName               xml.Name       `xml:"ListBucketResult"`
	IsTruncated           bool           `xml:"IsTruncated"`
	NextContinuationToken string         `xml:"NextContinuationToken"`
	Contents              []Object       `xml:"Contents"`
	CommonPrefixes        []commonPrefix `xml:"CommonPrefixes"`
}

type commonPrefix struct {
	Prefix string `xml:"Prefix"`
}

// ListRecursive lists every object under prefix, descending into each
// common prefix reported by the delimited listing and following
// continuation tokens across pages.
func (c *Client) ListRecursive(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	var pending []string

	token := ""
	for {
		page, err := c.listPage(ctx, prefix, token)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Contents...)
		for _, p := range page.CommonPrefixes {
			pending = append(pending, p.Prefix)
		}
		if !page.IsTruncated {
			break
		}
		token = page.NextContinuationToken
	}

	for _, sub := range pending {
		nested, err := c.ListRecursive(ctx, sub)
		if err != nil {
			return nil, err
		}
		objects = append(objects, nested...)
	}
	return objects, nil
}

// listPage fetches a single delimited ListObjectsV2 page.
func (c *Client) listPage(ctx context.Context, prefix, token string) (*listBucketResult, error) {
	q := url.Values{}
	q.Set("list-type", "2")
	q.Set("prefix", prefix)
	q.Set("delimiter", "/")
	if token != "" {
		q.Set("continuation-token", token)
	}
	reqURL := c.cfg.Endpoint + "?" + q.Encode()

	var result listBucketResult
	err := httputil.RetryWithBackoff(ctx, func() error {
		body, err := c.get(ctx, reqURL)
		if err != nil {
			return err
		}
		defer body.Close()

		result = listBucketResult{}
		if err := xml.NewDecoder(body).Decode(&result); err != nil {
			return fmt.Errorf("decode listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
