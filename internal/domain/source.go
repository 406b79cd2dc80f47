package domain

import "errors"

var (
	ErrUnsupportedLink      = errors.New("unsupported post type or link")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

type SourceKind string

const (
	SourceSingle  SourceKind = "single"
	SourceGallery SourceKind = "gallery"
)

// ImageSource is the resolved link target of a post: one direct image URL
// or an ordered gallery of them. Provider is a free-text label for
// third-party hosts ("Imgur", "Flickr"), used only for diagnostics.
type ImageSource struct {
	Kind     SourceKind
	URLs     []string
	Provider string
}

func SingleImage(url string) ImageSource {
	return ImageSource{Kind: SourceSingle, URLs: []string{url}}
}

func Gallery(urls []string) ImageSource {
	return ImageSource{Kind: SourceGallery, URLs: urls}
}

// SupportedFormats are the raster formats the dimension fetcher decodes.
// Anything else yields ImageUnsupportedMedia.
var SupportedFormats = []string{"BMP", "GIF", "JPEG", "PNG", "WEBP"}

// Dimensions is the decoded pixel size and format of a fetched image.
type Dimensions struct {
	Width  int
	Height int
	Format string
}
