package submission

import (
	"context"

	"wallpapermod/internal/domain"
)

type submissionUsecase interface {
	Get(ctx context.Context, postID string) (*domain.Submission, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Submission, error)
}

type recheckPublisher interface {
	Publish(ctx context.Context, key []byte, value []byte) error
}
