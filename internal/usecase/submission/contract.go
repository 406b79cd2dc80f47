package submission

import (
	"context"

	"wallpapermod/internal/domain"
)

type submissionRepository interface {
	Save(ctx context.Context, sub *domain.Submission) error
	Exists(ctx context.Context, postID string) (bool, error)
	GetByPostID(ctx context.Context, postID string) (*domain.Submission, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Submission, error)
}

type submissionClassifier interface {
	Classify(ctx context.Context, sub *domain.Submission, post domain.Post) error
}

type responder interface {
	MakeResponse(sub *domain.Submission) string
}

type eventPublisher interface {
	Publish(ctx context.Context, key []byte, value []byte) error
}
