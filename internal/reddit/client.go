package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

const (
	authURL = "https://www.reddit.com/api/v1/access_token"
	apiURL  = "https://oauth.reddit.com"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUnauthorized = errors.New("reddit authentication failed")
)

type Credentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
}

// Client is a minimal reddit API client bound to one subreddit. It
// authenticates with the script-app password grant and refreshes the
// token when it expires.
type Client struct {
	http      *http.Client
	creds     Credentials
	subreddit string
	userAgent string
	retries   retry.Strategy
	logger    *zlog.Zerolog

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(creds Credentials, subreddit, userAgent string, retries retry.Strategy, logger *zlog.Zerolog) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		creds:     creds,
		subreddit: subreddit,
		userAgent: userAgent,
		retries:   retries,
		logger:    logger,
	}
}

func (c *Client) Subreddit() string { return c.subreddit }

// ListNew returns one page of the subreddit's newest posts plus the
// pagination cursor for the next page ("" when exhausted).
func (c *Client) ListNew(ctx context.Context, after string, limit int) ([]domain.Post, string, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		params.Set("after", after)
	}

	var lst listing
	if err := c.getJSON(ctx, "/r/"+c.subreddit+"/new", params, &lst); err != nil {
		return nil, "", fmt.Errorf("list new posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(lst.Data.Children))
	for _, ch := range lst.Data.Children {
		posts = append(posts, ch.Data.toPost())
	}
	return posts, lst.Data.After, nil
}

// GetPost fetches a single post by its base-36 ID.
func (c *Client) GetPost(ctx context.Context, id string) (domain.Post, error) {
	params := url.Values{"id": {"t3_" + id}}

	var lst listing
	if err := c.getJSON(ctx, "/api/info", params, &lst); err != nil {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	if len(lst.Data.Children) == 0 {
		return domain.Post{}, fmt.Errorf("get post %s: %w", id, ErrPostNotFound)
	}
	return lst.Data.Children[0].Data.toPost(), nil
}

// Moderators lists the subreddit's moderator usernames.
func (c *Client) Moderators(ctx context.Context) ([]string, error) {
	var ul userList
	if err := c.getJSON(ctx, "/r/"+c.subreddit+"/about/moderators", nil, &ul); err != nil {
		return nil, fmt.Errorf("list moderators: %w", err)
	}
	names := make([]string, 0, len(ul.Data.Children))
	for _, m := range ul.Data.Children {
		names = append(names, m.Name)
	}
	return names, nil
}

// WikiPage returns the rendered HTML of a subreddit wiki page.
func (c *Client) WikiPage(ctx context.Context, page string) (string, error) {
	var wp wikiPage
	if err := c.getJSON(ctx, "/r/"+c.subreddit+"/wiki/"+page, nil, &wp); err != nil {
		return "", fmt.Errorf("fetch wiki page %s: %w", page, err)
	}
	return wp.Data.ContentHTML, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("raw_json", "1")

	var body []byte
	err := retry.Do(func() error {
		token, err := c.ensureToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "bearer "+token)
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateToken()
			return ErrUnauthorized
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, c.retries)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, v)
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type": {"password"},
		"username":   {c.creds.Username},
		"password":   {c.creds.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || tok.AccessToken == "" {
		return "", fmt.Errorf("%w: status %d %s", ErrUnauthorized, resp.StatusCode, tok.Error)
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	c.logger.Debug().Time("expires", c.tokenExpiry).Msg("Reddit token refreshed")
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}
