package resolver

import (
	"context"
	"fmt"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// maxCrosspostDepth bounds crosspost-chain resolution.
const maxCrosspostDepth = 3

type postGetter interface {
	GetPost(ctx context.Context, id string) (domain.Post, error)
}

type imgurClient interface {
	ImageURLs(ctx context.Context, link string) ([]string, error)
}

type flickrClient interface {
	ImageURL(ctx context.Context, link string) (string, error)
}

// Resolver classifies a post's link target into an ImageSource.
// Crossposts resolve through their parent post; third-party hosts go
// through their API clients.
type Resolver struct {
	posts  postGetter
	imgur  imgurClient
	flickr flickrClient
	logger *zlog.Zerolog
}

func New(posts postGetter, imgur imgurClient, flickr flickrClient, logger *zlog.Zerolog) *Resolver {
	return &Resolver{posts: posts, imgur: imgur, flickr: flickr, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, post domain.Post) (domain.ImageSource, error) {
	return r.resolve(ctx, post, 0)
}

func (r *Resolver) resolve(ctx context.Context, post domain.Post, depth int) (domain.ImageSource, error) {
	if post.CrosspostParentID != "" {
		if depth >= maxCrosspostDepth {
			return domain.ImageSource{}, fmt.Errorf("crosspost chain deeper than %d: %w", maxCrosspostDepth, domain.ErrUnsupportedLink)
		}
		parent, err := r.posts.GetPost(ctx, post.CrosspostParentID)
		if err != nil {
			return domain.ImageSource{}, fmt.Errorf("fetch crosspost parent %s: %w", post.CrosspostParentID, err)
		}
		r.logger.Debug().
			Str("post_id", post.ID).
			Str("parent_id", parent.ID).
			Msg("Resolving through crosspost parent")
		return r.resolve(ctx, parent, depth+1)
	}

	if post.IsGallery {
		if len(post.GalleryURLs) == 0 {
			return domain.ImageSource{}, fmt.Errorf("gallery %s has no valid items: %w", post.ID, domain.ErrUnsupportedLink)
		}
		return domain.Gallery(post.GalleryURLs), nil
	}

	if post.PostHint == "image" || post.Domain == "i.redd.it" {
		return domain.SingleImage(post.URL), nil
	}

	switch post.Domain {
	case "imgur.com":
		urls, err := r.imgur.ImageURLs(ctx, post.URL)
		if err != nil {
			return domain.ImageSource{}, err
		}
		src := domain.Gallery(urls)
		if len(urls) == 1 {
			src = domain.SingleImage(urls[0])
		}
		src.Provider = "Imgur"
		return src, nil
	case "flickr.com":
		url, err := r.flickr.ImageURL(ctx, post.URL)
		if err != nil {
			return domain.ImageSource{}, err
		}
		src := domain.SingleImage(url)
		src.Provider = "Flickr"
		return src, nil
	}

	return domain.ImageSource{}, fmt.Errorf("domain %q, hint %q: %w", post.Domain, post.PostHint, domain.ErrUnsupportedLink)
}
