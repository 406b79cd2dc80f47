package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallpapermod/internal/domain"
	repoSubmission "wallpapermod/internal/repository/submission"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// SubmissionUsecase drives a single post through classification,
// response templating, persistence and event publication.
type SubmissionUsecase struct {
	repo       submissionRepository
	classifier submissionClassifier
	responder  responder
	publisher  eventPublisher
	logger     *zlog.Zerolog
}

// NewSubmissionUsecase wires the pipeline. publisher may be nil when
// event publication is disabled.
func NewSubmissionUsecase(repo submissionRepository, classifier submissionClassifier, responder responder, publisher eventPublisher, logger *zlog.Zerolog) *SubmissionUsecase {
	return &SubmissionUsecase{
		repo:       repo,
		classifier: classifier,
		responder:  responder,
		publisher:  publisher,
		logger:     logger,
	}
}

// Process classifies a post and records the verdict. Posts already in
// the database are skipped with ErrAlreadyProcessed.
func (u *SubmissionUsecase) Process(ctx context.Context, post domain.Post) (*domain.Submission, error) {
	seen, err := u.repo.Exists(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check submission %s: %w", post.ID, err)
	}
	if seen {
		u.logger.Debug().Str("post_id", post.ID).Msg("Submission already processed, skipping")
		return nil, ErrAlreadyProcessed
	}

	sub := domain.NewSubmission(post)

	if err := u.classifier.Classify(ctx, sub, post); err != nil {
		u.logger.Error().Err(err).Str("post_id", post.ID).Msg("Classification failed")
		return nil, fmt.Errorf("failed to classify submission %s: %w", post.ID, err)
	}

	sub.DateProcessed = time.Now()
	sub.Response = u.responder.MakeResponse(sub)

	if err := u.repo.Save(ctx, sub); err != nil {
		if errors.Is(err, repoSubmission.ErrDuplicateSubmission) {
			u.logger.Debug().Str("post_id", post.ID).Msg("Submission saved concurrently, skipping")
			return nil, ErrAlreadyProcessed
		}
		u.logger.Error().Err(err).Str("post_id", post.ID).Msg("Failed to save submission")
		return nil, fmt.Errorf("failed to save submission %s: %w", post.ID, err)
	}

	if u.publisher != nil {
		if err := u.publish(ctx, sub); err != nil {
			u.logger.Error().Err(err).Str("post_id", post.ID).Msg("Failed to publish classification event")
		}
	}

	u.logger.Info().
		Str("post_id", sub.PostID).
		Str("result", string(sub.Result)).
		Str("type", string(sub.Type)).
		Int("images", len(sub.Images)).
		Msg("Submission processed")
	return sub, nil
}

func (u *SubmissionUsecase) publish(ctx context.Context, sub *domain.Submission) error {
	event := domain.NewClassificationEvent(uuid.New().String(), sub)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := u.publisher.Publish(ctx, []byte(sub.PostID), payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Get returns a stored submission with its images.
func (u *SubmissionUsecase) Get(ctx context.Context, postID string) (*domain.Submission, error) {
	sub, err := u.repo.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, repoSubmission.ErrSubmissionNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission %s: %w", postID, err)
	}
	return sub, nil
}

// List returns stored submissions, newest first.
func (u *SubmissionUsecase) List(ctx context.Context, limit, offset int) ([]*domain.Submission, error) {
	subs, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}
