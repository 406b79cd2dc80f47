package classifier

import (
	"context"

	"wallpapermod/internal/domain"
)

type linkResolver interface {
	Resolve(ctx context.Context, post domain.Post) (domain.ImageSource, error)
}

type dimensionFetcher interface {
	FetchDimensions(ctx context.Context, url string) (domain.Dimensions, error)
}
