package imgur

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/retry"
)

const defaultAPIBase = "https://api.imgur.com"

var (
	albumPattern = regexp.MustCompile(`(?i)^.*?/a/([a-z0-9]+)(?:\.[a-z0-9]+)?$`)
	tagPattern   = regexp.MustCompile(`(?i)^.*?/t/[^/]+/([a-z0-9]+)(?:\.[a-z0-9]+)?$`)
	imagePattern = regexp.MustCompile(`(?i)^.*?/([a-z0-9]+)(?:\.[a-z0-9]+)?$`)
)

// Client resolves imgur album and image links to direct image URLs
// through the v3 API.
type Client struct {
	clientID string
	http     *http.Client
	retries  retry.Strategy
	apiBase  string
}

func NewClient(clientID string, retries retry.Strategy) *Client {
	return &Client{
		clientID: clientID,
		http:     &http.Client{Timeout: 20 * time.Second},
		retries:  retries,
		apiBase:  defaultAPIBase,
	}
}

type apiResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link   string `json:"link"`
		Error  string `json:"error"`
		Images []struct {
			Link string `json:"link"`
		} `json:"images"`
	} `json:"data"`
}

// ImageURLs resolves one imgur link. Albums and tag posts yield the full
// image list in album order; anything else with a trailing hash is
// treated as a single image.
func (c *Client) ImageURLs(ctx context.Context, link string) ([]string, error) {
	if m := albumPattern.FindStringSubmatch(link); m != nil {
		return c.albumImageURLs(ctx, m[1])
	}
	if m := tagPattern.FindStringSubmatch(link); m != nil {
		return c.albumImageURLs(ctx, m[1])
	}
	if m := imagePattern.FindStringSubmatch(link); m != nil {
		url, err := c.singleImageURL(ctx, m[1])
		if err != nil {
			return nil, err
		}
		return []string{url}, nil
	}
	return nil, fmt.Errorf("unparseable imgur url %q: %w", link, domain.ErrUnsupportedLink)
}

func (c *Client) singleImageURL(ctx context.Context, hash string) (string, error) {
	resp, err := c.get(ctx, "/3/image/"+hash)
	if err != nil {
		return "", err
	}
	return resp.Data.Link, nil
}

func (c *Client) albumImageURLs(ctx context.Context, hash string) ([]string, error) {
	resp, err := c.get(ctx, "/3/album/"+hash)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(resp.Data.Images))
	for _, img := range resp.Data.Images {
		urls = append(urls, img.Link)
	}
	return urls, nil
}

func (c *Client) get(ctx context.Context, path string) (*apiResponse, error) {
	var out apiResponse
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Client-ID "+c.clientID)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return fmt.Errorf("decode imgur response: %w", err)
		}
		if !out.Success {
			if out.Data.Error != "" {
				return fmt.Errorf("imgur error %d: %s", out.Status, out.Data.Error)
			}
			return fmt.Errorf("imgur error %d", out.Status)
		}
		return nil
	}, c.retries)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
