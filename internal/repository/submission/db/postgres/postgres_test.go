package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallpapermod/internal/domain"
	repoSubmission "wallpapermod/internal/repository/submission"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

func TestRezzesCodec(t *testing.T) {
	tests := []struct {
		rezzes []domain.Resolution
		want   string
	}{
		{nil, ""},
		{[]domain.Resolution{{Width: 1920, Height: 1080}}, "1920x1080"},
		{
			[]domain.Resolution{{Width: 1920, Height: 1080}, {Width: 3840, Height: 1080}, {Width: 1920, Height: 1080}},
			"1920x1080,3840x1080,1920x1080",
		},
	}
	for _, tt := range tests {
		got := encodeRezzes(tt.rezzes)
		if got != tt.want {
			t.Errorf("encodeRezzes(%v) = %q, want %q", tt.rezzes, got, tt.want)
			continue
		}
		back, err := decodeRezzes(got)
		if err != nil {
			t.Errorf("decodeRezzes(%q): %v", got, err)
			continue
		}
		if len(back) != len(tt.rezzes) {
			t.Errorf("decodeRezzes(%q) = %v, want %v", got, back, tt.rezzes)
			continue
		}
		for i := range back {
			if back[i] != tt.rezzes[i] {
				t.Errorf("decodeRezzes(%q)[%d] = %v, want %v", got, i, back[i], tt.rezzes[i])
			}
		}
	}
}

func TestDecodeRezzesMalformed(t *testing.T) {
	for _, s := range []string{"1920", "x1080", "1920xtall", "widex1080"} {
		if _, err := decodeRezzes(s); err == nil {
			t.Errorf("decodeRezzes(%q): expected an error", s)
		}
	}
}

func testRepo(t *testing.T) (*SubmissionsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := NewSubmissionsRepository(&dbpg.DB{Master: db}, retry.Strategy{Attempts: 1})
	return repo, mock
}

func savedSubmission() *domain.Submission {
	return &domain.Submission{
		PostID:        "abc123",
		Title:         "Sunrise [1920x1080]",
		Type:          domain.PostTypeImage,
		Result:        domain.PostValid,
		DateSubmitted: time.Now(),
		DateProcessed: time.Now(),
		Images: []*domain.Image{
			{PostID: "abc123", URL: "https://i.redd.it/a.png", Format: "PNG", X: 1920, Y: 1080, Result: domain.ImageValid},
		},
	}
}

func TestSaveCommitsSubmissionWithImages(t *testing.T) {
	repo, mock := testRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO submissions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO images").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), savedSubmission()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveRollsBackOnImageFailure(t *testing.T) {
	repo, mock := testRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO submissions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO images").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), savedSubmission()); err == nil {
		t.Fatal("Save: expected an error")
	}
	// No commit expectation: the submission row must not survive a failed
	// image insert, or Exists would dedupe the post with images missing.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveMapsDuplicateKey(t *testing.T) {
	repo, mock := testRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO submissions").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "submissions_post_id_key"`))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), savedSubmission())
	if !errors.Is(err, repoSubmission.ErrDuplicateSubmission) {
		t.Fatalf("err = %v, want ErrDuplicateSubmission", err)
	}
}
