package domain

import (
	"strings"
	"time"
)

// Post is the raw data of one retrieved post, before classification.
type Post struct {
	ID                string
	Subreddit         string
	Title             string
	Author            string
	Permalink         string
	URL               string
	Domain            string
	PostHint          string
	IsGallery         bool
	GalleryURLs       []string
	CrosspostParentID string
	CreatedAt         time.Time
}

// TitleToken is one span of a parsed title: either literal text or a
// resolution marker carrying its decoded dimensions and scale class.
// Scale 0 means declared but not acceptable, 1 is a plain match, 2 and 3
// are dual/triple-monitor width multiples.
type TitleToken struct {
	Value  string
	Marker bool
	Width  int
	Height int
	Scale  int
}

// Submission is one classified post. It is constructed from a Post,
// mutated in place while parsing and image checks proceed, and never
// touched again after its result is set.
type Submission struct {
	ID            string
	PostID        string
	Title         string
	Author        string
	Permalink     string
	Domain        string
	Res           []Resolution
	TitleTokens   []TitleToken
	GoodRezzes    ResolutionSet
	Type          PostType
	Result        PostResult
	Response      string
	Removed       bool
	DateSubmitted time.Time
	DateProcessed time.Time
	Images        []*Image
}

// Image belongs to exactly one Submission. X and Y stay 0 until the
// payload decodes as a supported raster format.
type Image struct {
	ID     string
	PostID string
	URL    string
	Format string
	X      int
	Y      int
	Result ImageResult
}

func NewSubmission(p Post) *Submission {
	return &Submission{
		PostID:        p.ID,
		Title:         strings.TrimSpace(p.Title),
		Author:        p.Author,
		Permalink:     p.Permalink,
		Domain:        p.Domain,
		GoodRezzes:    NewResolutionSet(),
		Type:          PostTypeUnknown,
		DateSubmitted: p.CreatedAt,
	}
}

// PrettyTitle reconstructs the title from its tokens. The concatenation
// is byte-for-byte identical to the parsed title.
func (s *Submission) PrettyTitle() string {
	var b strings.Builder
	for _, tok := range s.TitleTokens {
		b.WriteString(tok.Value)
	}
	return b.String()
}
