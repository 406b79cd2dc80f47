package classifier

import (
	"context"
	"errors"
	"fmt"

	"wallpapermod/internal/domain"

	"github.com/wb-go/wbf/zlog"
)

// Classifier runs the full classification pass for one submission:
// title parsing, link resolution, per-image validation, aggregation.
// It holds an immutable known-good snapshot and never retries or
// persists anything itself.
type Classifier struct {
	knownGood  domain.ResolutionSet
	moderators map[string]struct{}
	resolver   linkResolver
	fetcher    dimensionFetcher
	logger     *zlog.Zerolog
}

func New(knownGood domain.ResolutionSet, moderators []string, resolver linkResolver, fetcher dimensionFetcher, logger *zlog.Zerolog) *Classifier {
	mods := make(map[string]struct{}, len(moderators))
	for _, m := range moderators {
		mods[m] = struct{}{}
	}
	return &Classifier{
		knownGood:  knownGood,
		moderators: mods,
		resolver:   resolver,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// Classify fills sub in place: tokens, declared and good resolutions,
// post type, images and the final result. Unrecognized links and titles
// without usable resolutions surface as post results, not errors; an
// error return means a collaborator failed and no result was assigned.
func (c *Classifier) Classify(ctx context.Context, sub *domain.Submission, post domain.Post) error {
	sub.TitleTokens, sub.Res, sub.GoodRezzes = ParseTitle(sub.Title, c.knownGood)

	if _, ok := c.moderators[sub.Author]; ok {
		sub.Type = domain.PostTypeUnknown
		sub.Result = domain.PostModpost
		return nil
	}

	if len(sub.Res) == 0 {
		sub.Type = domain.PostTypeUnknown
		sub.Result = domain.PostNoResolution
		return nil
	}
	if sub.GoodRezzes.Len() == 0 {
		sub.Type = domain.PostTypeUnknown
		sub.Result = domain.PostUnsupportedRes
		return nil
	}

	source, err := c.resolver.Resolve(ctx, post)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedLink) {
			sub.Type = domain.PostTypeUnknown
			sub.Result = domain.PostUnsupportedTypeLink
			return nil
		}
		return fmt.Errorf("resolve post link: %w", err)
	}

	switch source.Kind {
	case domain.SourceGallery:
		sub.Type = domain.PostTypeGallery
	default:
		sub.Type = domain.PostTypeImage
	}
	if source.Provider != "" {
		c.logger.Debug().
			Str("post_id", sub.PostID).
			Str("provider", source.Provider).
			Msg("Resolved through external provider")
	}

	for _, url := range source.URLs {
		img, err := c.checkImage(ctx, sub, url)
		if err != nil {
			return err
		}
		sub.Images = append(sub.Images, img)
	}

	sub.Result = Aggregate(sub.Images)
	return nil
}

// checkImage validates a single resolved URL. An unsupported payload is
// an outcome, not an error, and never blocks sibling images.
func (c *Classifier) checkImage(ctx context.Context, sub *domain.Submission, url string) (*domain.Image, error) {
	img := &domain.Image{PostID: sub.PostID, URL: url}

	dims, err := c.fetcher.FetchDimensions(ctx, url)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedMediaType) {
			img.Result = domain.ImageUnsupportedMedia
			c.logger.Warn().
				Str("post_id", sub.PostID).
				Str("url", url).
				Msg("Unsupported media type")
			return img, nil
		}
		return nil, fmt.Errorf("fetch dimensions for %s: %w", url, err)
	}

	img.X = dims.Width
	img.Y = dims.Height
	img.Format = dims.Format
	img.Result = ValidateDimensions(dims.Width, dims.Height, sub.GoodRezzes)

	c.logger.Debug().
		Str("post_id", sub.PostID).
		Str("format", dims.Format).
		Int("width", dims.Width).
		Int("height", dims.Height).
		Str("result", string(img.Result)).
		Msg("Image checked")

	return img, nil
}
