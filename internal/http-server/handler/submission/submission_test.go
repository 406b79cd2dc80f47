package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallpapermod/internal/domain"
	submission_uc "wallpapermod/internal/usecase/submission"

	"github.com/go-chi/chi/v5"
	"github.com/wb-go/wbf/zlog"
)

type fakeUsecase struct {
	subs map[string]*domain.Submission
}

func (f *fakeUsecase) Get(_ context.Context, postID string) (*domain.Submission, error) {
	sub, ok := f.subs[postID]
	if !ok {
		return nil, submission_uc.ErrSubmissionNotFound
	}
	return sub, nil
}

func (f *fakeUsecase) List(_ context.Context, _, _ int) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, sub := range f.subs {
		out = append(out, sub)
	}
	return out, nil
}

type fakeRecheck struct {
	published []domain.RecheckRequest
}

func (f *fakeRecheck) Publish(_ context.Context, _, value []byte) error {
	var req domain.RecheckRequest
	if err := json.Unmarshal(value, &req); err != nil {
		return err
	}
	f.published = append(f.published, req)
	return nil
}

func testHandler(uc submissionUsecase, recheck recheckPublisher) *SubmissionHandler {
	zlog.Init()
	return NewSubmissionHandler(uc, recheck, &zlog.Logger)
}

func sampleSubmission() *domain.Submission {
	return &domain.Submission{
		PostID:        "abc123",
		Title:         "Sunrise [1920x1080]",
		Author:        "alice",
		Domain:        "i.redd.it",
		Res:           []domain.Resolution{{Width: 1920, Height: 1080}},
		Type:          domain.PostTypeImage,
		Result:        domain.PostValid,
		DateSubmitted: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		DateProcessed: time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC),
		Images: []*domain.Image{
			{URL: "https://i.redd.it/a.png", Format: "PNG", X: 1920, Y: 1080, Result: domain.ImageValid},
		},
	}
}

func TestGetSubmission(t *testing.T) {
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{"abc123": sampleSubmission()}}, nil)

	r := chi.NewRouter()
	r.Get("/api/submissions/{postID}", h.GetSubmission)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/abc123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		PostID      string   `json:"post_id"`
		Result      string   `json:"result"`
		Resolutions []string `json:"resolutions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PostID != "abc123" || resp.Result != "VALID" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Resolutions) != 1 || resp.Resolutions[0] != "1920x1080" {
		t.Errorf("resolutions = %v", resp.Resolutions)
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{}}, nil)

	r := chi.NewRouter()
	r.Get("/api/submissions/{postID}", h.GetSubmission)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListSubmissions(t *testing.T) {
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{"abc123": sampleSubmission()}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions?limit=10", nil)
	rec := httptest.NewRecorder()
	h.ListSubmissions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Submissions []json.RawMessage `json:"submissions"`
		Limit       int               `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Submissions) != 1 {
		t.Errorf("got %d submissions, want 1", len(resp.Submissions))
	}
	if resp.Limit != 10 {
		t.Errorf("limit = %d, want 10", resp.Limit)
	}
}

func TestCheckSubmissions(t *testing.T) {
	recheck := &fakeRecheck{}
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{}}, recheck)

	body := strings.NewReader(`{"post_ids":["abc123","def456"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/check", body)
	rec := httptest.NewRecorder()
	h.CheckSubmissions(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}
	if len(recheck.published) != 2 {
		t.Fatalf("published %d rechecks, want 2", len(recheck.published))
	}
	if recheck.published[0].PostID != "abc123" || recheck.published[1].PostID != "def456" {
		t.Errorf("published = %+v", recheck.published)
	}
}

func TestCheckSubmissionsValidation(t *testing.T) {
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{}}, &fakeRecheck{})

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(`{"post_ids":[]}`))
	rec := httptest.NewRecorder()
	h.CheckSubmissions(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckSubmissionsQueueDisabled(t *testing.T) {
	h := testHandler(&fakeUsecase{subs: map[string]*domain.Submission{}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(`{"post_ids":["abc123"]}`))
	rec := httptest.NewRecorder()
	h.CheckSubmissions(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
