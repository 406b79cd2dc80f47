package wiki

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wallpapermod/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/wb-go/wbf/zlog"
)

const resolutionsPage = "resolutions"

var ErrNoResolutionTable = errors.New("no table with Width/Height/Description headers on wiki page")

type pageFetcher interface {
	WikiPage(ctx context.Context, page string) (string, error)
}

// Source reads the community's canonical acceptable-resolutions table
// from the wiki. A missing or malformed table is fatal to startup, not a
// per-submission concern.
type Source struct {
	client pageFetcher
	logger *zlog.Zerolog
}

func NewSource(client pageFetcher, logger *zlog.Zerolog) *Source {
	return &Source{client: client, logger: logger}
}

// KnownGood fetches the wiki page and returns the resolution snapshot.
func (s *Source) KnownGood(ctx context.Context) (domain.ResolutionSet, error) {
	html, err := s.client.WikiPage(ctx, resolutionsPage)
	if err != nil {
		return nil, fmt.Errorf("fetch wiki page %q: %w", resolutionsPage, err)
	}

	rezzes, err := ParseResolutionTable(html)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("count", len(rezzes)).Msg("Loaded known-good resolutions")
	return domain.NewResolutionSet(rezzes...), nil
}

// ParseResolutionTable extracts resolutions from the first table whose
// header row reads Width, Height, Description.
func ParseResolutionTable(html string) ([]domain.Resolution, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse wiki html: %w", err)
	}

	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		headers := t.Find("thead tr").First().Find("th, td")
		if headers.Length() < 3 {
			return true
		}
		if headerMatches(headers.Eq(0), "width") &&
			headerMatches(headers.Eq(1), "height") &&
			headerMatches(headers.Eq(2), "description") {
			table = t
			return false
		}
		return true
	})
	if table == nil {
		return nil, ErrNoResolutionTable
	}

	var rezzes []domain.Resolution
	var rowErr error
	table.Find("tbody tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return true
		}
		w, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			rowErr = fmt.Errorf("row %d: bad width %q", i, cells.Eq(0).Text())
			return false
		}
		h, err := strconv.Atoi(strings.TrimSpace(cells.Eq(1).Text()))
		if err != nil {
			rowErr = fmt.Errorf("row %d: bad height %q", i, cells.Eq(1).Text())
			return false
		}
		rezzes = append(rezzes, domain.Resolution{Width: w, Height: h})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(rezzes) == 0 {
		return nil, fmt.Errorf("resolution table has no usable rows")
	}
	return rezzes, nil
}

func headerMatches(cell *goquery.Selection, want string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(cell.Text())), want)
}
