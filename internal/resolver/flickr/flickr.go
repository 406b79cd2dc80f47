package flickr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/retry"
)

const (
	defaultAPIBase = "https://www.flickr.com/services/rest/"
	sizeLabel      = "Original"
)

var photoPattern = regexp.MustCompile(`(?i)^.*?/photos/[@a-z0-9]+/(\d+)/?$`)

// Client resolves flickr photo links to their original-size image URL
// through the flickr.photos.getSizes endpoint.
type Client struct {
	apiKey  string
	http    *http.Client
	retries retry.Strategy
	apiBase string
}

func NewClient(apiKey string, retries retry.Strategy) *Client {
	return &Client{
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
		retries: retries,
		apiBase: defaultAPIBase,
	}
}

type sizesResponse struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Sizes   struct {
		Size []struct {
			Label  string `json:"label"`
			Source string `json:"source"`
		} `json:"size"`
	} `json:"sizes"`
}

// ImageURL resolves one flickr photo page link.
func (c *Client) ImageURL(ctx context.Context, link string) (string, error) {
	m := photoPattern.FindStringSubmatch(link)
	if m == nil {
		return "", fmt.Errorf("unparseable flickr url %q: %w", link, domain.ErrUnsupportedLink)
	}
	return c.originalSizeURL(ctx, m[1])
}

func (c *Client) originalSizeURL(ctx context.Context, photoID string) (string, error) {
	params := url.Values{
		"method":         {"flickr.photos.getSizes"},
		"api_key":        {c.apiKey},
		"photo_id":       {photoID},
		"format":         {"json"},
		"nojsoncallback": {"1"},
	}

	var out sizesResponse
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode flickr response: %w", err)
		}
		if out.Stat != "ok" {
			return fmt.Errorf("flickr error %d: %s", out.Code, out.Message)
		}
		return nil
	}, c.retries)
	if err != nil {
		return "", err
	}

	for _, size := range out.Sizes.Size {
		if size.Label == sizeLabel {
			return size.Source, nil
		}
	}
	return "", fmt.Errorf("no %q size for flickr photo %s", sizeLabel, photoID)
}
