package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wallpapermod/internal/domain"
	repoSubmission "wallpapermod/internal/repository/submission"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type SubmissionsRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewSubmissionsRepository(db *dbpg.DB, retries retry.Strategy) *SubmissionsRepository {
	return &SubmissionsRepository{
		db:      db,
		retries: retries,
	}
}

// Save records a classified submission and its images in one
// transaction. The submission is complete by the time it arrives here
// and is never updated afterwards; a failed image insert must not leave
// the post row behind, or the dedupe check would skip it forever.
func (r *SubmissionsRepository) Save(ctx context.Context, sub *domain.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	for _, img := range sub.Images {
		if img.ID == "" {
			img.ID = uuid.New().String()
		}
	}

	err := retry.Do(func() error {
		return r.saveTx(ctx, sub)
	}, r.retries)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return repoSubmission.ErrDuplicateSubmission
		}
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

func (r *SubmissionsRepository) saveTx(ctx context.Context, sub *domain.Submission) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	submissionQuery := `
		INSERT INTO submissions (
			id, post_id, title, author, permalink, domain,
			res, type, result, response, removed,
			date_submitted, date_processed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = tx.ExecContext(ctx, submissionQuery,
		sub.ID,
		sub.PostID,
		sub.Title,
		sub.Author,
		sub.Permalink,
		sub.Domain,
		encodeRezzes(sub.Res),
		sub.Type,
		sub.Result,
		sub.Response,
		sub.Removed,
		sub.DateSubmitted,
		sub.DateProcessed,
	)
	if err != nil {
		return err
	}

	imageQuery := `
		INSERT INTO images (id, post_id, url, format, x, y, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, img := range sub.Images {
		_, err = tx.ExecContext(ctx, imageQuery,
			img.ID,
			img.PostID,
			img.URL,
			img.Format,
			img.X,
			img.Y,
			img.Result,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Exists reports whether a post ID has already been processed.
func (r *SubmissionsRepository) Exists(ctx context.Context, postID string) (bool, error) {
	query := `SELECT 1 FROM submissions WHERE post_id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, postID)
	if err != nil {
		return false, fmt.Errorf("failed to query submission: %w", err)
	}

	var one int
	err = row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to scan submission: %w", err)
	}
	return true, nil
}

func (r *SubmissionsRepository) GetByPostID(ctx context.Context, postID string) (*domain.Submission, error) {
	query := `
		SELECT id, post_id, title, author, permalink, domain,
		       res, type, result, response, removed,
		       date_submitted, date_processed
		FROM submissions
		WHERE post_id = $1
	`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	sub, err := scanSubmission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repoSubmission.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	sub.Images, err = r.imagesByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubmissionsRepository) List(ctx context.Context, limit, offset int) ([]*domain.Submission, error) {
	query := `
		SELECT id, post_id, title, author, permalink, domain,
		       res, type, result, response, removed,
		       date_submitted, date_processed
		FROM submissions
		ORDER BY date_processed DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}
	return subs, nil
}

func (r *SubmissionsRepository) Count(ctx context.Context) (int, error) {
	row, err := r.db.QueryRowWithRetry(ctx, r.retries, `SELECT COUNT(*) FROM submissions`)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to scan count: %w", err)
	}
	return count, nil
}

func (r *SubmissionsRepository) imagesByPostID(ctx context.Context, postID string) ([]*domain.Image, error) {
	query := `
		SELECT id, post_id, url, format, x, y, result
		FROM images
		WHERE post_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryWithRetry(ctx, r.retries, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []*domain.Image
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.PostID, &img.URL, &img.Format, &img.X, &img.Y, &img.Result); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return images, nil
}

func scanSubmission(scan func(dest ...any) error) (*domain.Submission, error) {
	var sub domain.Submission
	var res string
	err := scan(
		&sub.ID,
		&sub.PostID,
		&sub.Title,
		&sub.Author,
		&sub.Permalink,
		&sub.Domain,
		&res,
		&sub.Type,
		&sub.Result,
		&sub.Response,
		&sub.Removed,
		&sub.DateSubmitted,
		&sub.DateProcessed,
	)
	if err != nil {
		return nil, err
	}

	sub.Res, err = decodeRezzes(res)
	if err != nil {
		return nil, fmt.Errorf("failed to decode resolutions for %s: %w", sub.PostID, err)
	}
	return &sub, nil
}

// encodeRezzes serializes declared resolutions as "1920x1080,3840x1080",
// preserving title order and duplicates.
func encodeRezzes(rezzes []domain.Resolution) string {
	parts := make([]string, 0, len(rezzes))
	for _, r := range rezzes {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

func decodeRezzes(s string) ([]domain.Resolution, error) {
	if s == "" {
		return nil, nil
	}

	var rezzes []domain.Resolution
	for _, part := range strings.Split(s, ",") {
		w, h, ok := strings.Cut(part, "x")
		if !ok {
			return nil, fmt.Errorf("bad resolution %q", part)
		}
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("bad width in %q", part)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("bad height in %q", part)
		}
		rezzes = append(rezzes, domain.Resolution{Width: width, Height: height})
	}
	return rezzes, nil
}
