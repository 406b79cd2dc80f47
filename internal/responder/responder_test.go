package responder

import (
	"strings"
	"testing"

	"wallpapermod/internal/domain"
)

func testSubmission(result domain.PostResult) *domain.Submission {
	return &domain.Submission{
		PostID:    "abc1234",
		Author:    "someone",
		Permalink: "/r/wallpaper/comments/abc1234/cool_rose/",
		Result:    result,
	}
}

func TestMakeResponseSilentResults(t *testing.T) {
	r := New("wallpaper")
	for _, result := range []domain.PostResult{
		domain.PostValid,
		domain.PostModpost,
		domain.PostUnsupportedMedia,
		domain.PostUnsupportedTypeLink,
	} {
		if got := r.MakeResponse(testSubmission(result)); got != "" {
			t.Errorf("%v: expected no response, got %q", result, got)
		}
	}
}

func TestMakeResponseNoResolution(t *testing.T) {
	r := New("wallpaper")
	got := r.MakeResponse(testSubmission(domain.PostNoResolution))

	for _, want := range []string{
		"Hello /u/someone",
		"/r/wallpaper/comments/abc1234/cool_rose/",
		"has been removed",
		"/r/wallpaper/wiki/resolutions",
		"^^BOOP! ^^BLEEP!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("response missing %q:\n%s", want, got)
		}
	}
}

func TestMakeResponseSmallerExplicit(t *testing.T) {
	r := New("wallpaper")
	sub := testSubmission(domain.PostSmaller)
	sub.Res = []domain.Resolution{{Width: 1920, Height: 1080}}
	sub.Images = []*domain.Image{{X: 1280, Y: 720, Result: domain.ImageSmaller}}

	got := r.MakeResponse(sub)
	if !strings.Contains(got, "(1280 x 720)") || !strings.Contains(got, "(1920 x 1080)") {
		t.Errorf("explicit dimensions missing:\n%s", got)
	}
}

func TestMakeResponseSmallerGeneric(t *testing.T) {
	r := New("wallpaper")
	sub := testSubmission(domain.PostSmaller)
	sub.Res = []domain.Resolution{{Width: 1920, Height: 1080}, {Width: 2560, Height: 1440}}
	sub.Images = []*domain.Image{{X: 100, Y: 100}, {X: 200, Y: 200}}

	got := r.MakeResponse(sub)
	if strings.Contains(got, "(100 x 100)") {
		t.Errorf("generic message should not name specific dimensions:\n%s", got)
	}
	if !strings.Contains(got, "has been removed") {
		t.Errorf("response = %q", got)
	}
}
