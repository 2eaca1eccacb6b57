package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/inkpress/inkpress/pkg/cache"
	"github.com/inkpress/inkpress/pkg/errors"
	"github.com/inkpress/inkpress/pkg/httputil"
	"github.com/inkpress/inkpress/pkg/observability"
)

// maxPayloadSize bounds a single fetched resource payload.
const maxPayloadSize = 16 << 20

// HTTPProvider resolves resource keys against a remote host: plain keys
// are URL paths relative to the base, emoji keys map to rasters under
// <base>/emoji/. Fetched payloads are decoded once and cached on disk
// so repeated renders do not re-download unchanged resources.
type HTTPProvider struct {
	base   *url.URL
	client *http.Client
	cache  *httputil.Cache
	keyer  cache.Keyer
	policy Policy
}

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPPolicy sets the degradation policy for unresolvable keys.
func WithHTTPPolicy(p Policy) HTTPOption {
	return func(h *HTTPProvider) {
		h.policy = p
	}
}

// WithHTTPClient sets the HTTP client used for fetches.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPProvider) {
		h.client = c
	}
}

// WithHTTPCache sets the on-disk cache for decoded payloads. Without a
// cache every resolve fetches from the host.
func WithHTTPCache(c *httputil.Cache) HTTPOption {
	return func(h *HTTPProvider) {
		h.cache = c
	}
}

// WithHTTPKeyer sets the keyer for cached payload entries, so one
// payload store can be shared with other key spaces.
func WithHTTPKeyer(k cache.Keyer) HTTPOption {
	return func(h *HTTPProvider) {
		h.keyer = k
	}
}

// NewHTTPProvider creates a provider fetching from the given base URL.
func NewHTTPProvider(base string, opts ...HTTPOption) (*HTTPProvider, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "resource base URL %s", base)
	}
	h := &HTTPProvider{
		base:   u,
		client: &http.Client{Timeout: 30 * time.Second},
		keyer:  cache.NewDefaultKeyer(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Resolve fetches and decodes the image behind a resource key.
func (h *HTTPProvider) Resolve(key string) (Image, error) {
	path, err := h.pathFor(key)
	if err != nil {
		return h.degrade(key, err)
	}

	var img Image
	storeKey := h.keyer.ResourceKey(key)
	if h.cache != nil {
		if ok, err := h.cache.Get(storeKey, &img); ok && err == nil {
			observability.Cache().OnCacheHit(context.Background(), "resource")
			return img, nil
		}
		observability.Cache().OnCacheMiss(context.Background(), "resource")
	}

	data, err := h.fetch(path)
	if err != nil {
		return h.degrade(key, err)
	}
	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return h.degrade(key, notFound(key, err))
	}
	img = flatten(decoded)

	if h.cache != nil {
		if err := h.cache.Set(storeKey, img); err == nil {
			observability.Cache().OnCacheSet(context.Background(), "resource", len(img.Pixels))
		}
	}
	return img, nil
}

// pathFor maps a resource key to a URL path relative to the base.
func (h *HTTPProvider) pathFor(key string) (string, error) {
	if code, ok := strings.CutPrefix(key, "emoji:"); ok {
		file, known := emojiFiles[code]
		if !known {
			return "", notFound(key, nil)
		}
		return "emoji/" + file, nil
	}
	return strings.TrimPrefix(key, "/"), nil
}

// fetch downloads a payload, retrying transient failures.
func (h *HTTPProvider) fetch(path string) ([]byte, error) {
	u := h.base.JoinPath(path)
	ctx := context.Background()

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}

		observability.HTTP().OnRequest(ctx, req.Method, u.Host, u.Path)
		start := time.Now()
		resp, err := h.client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, u.Host, u.Path, err)
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			data, err = io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
			return err
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeResourceNotFound, "no resource at %s", u)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return &httputil.RetryableError{Err: fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)}
		default:
			return errors.New(errors.ErrCodeResourceLoad, "fetch %s: status %d", u, resp.StatusCode)
		}
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "fetch %s", u)
	}
	return data, nil
}

// degrade applies the configured policy to a resolution failure.
func (h *HTTPProvider) degrade(key string, err error) (Image, error) {
	if h.policy == PolicyPlaceholder {
		return Placeholder, nil
	}
	return Image{}, err
}
