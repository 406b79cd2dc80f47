package classifier

import (
	"testing"

	"wallpapermod/internal/domain"
)

func TestValidateDimensions(t *testing.T) {
	good := domain.NewResolutionSet(
		domain.Resolution{Width: 1920, Height: 1080},
		domain.Resolution{Width: 2560, Height: 1440},
	)

	tests := []struct {
		name          string
		width, height int
		want          domain.ImageResult
	}{
		{"exact match", 1920, 1080, domain.ImageValid},
		{"exact match second entry", 2560, 1440, domain.ImageValid},
		{"dominates both axes", 2000, 1200, domain.ImageLarger},
		{"dominates only one declared size", 1920, 1081, domain.ImageLarger},
		{"width too small", 1000, 1080, domain.ImageSmaller},
		{"height too small", 1920, 1000, domain.ImageSmaller},
		{"equal width taller", 1920, 2000, domain.ImageLarger},
		{"smaller than everything", 800, 600, domain.ImageSmaller},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateDimensions(tt.width, tt.height, good); got != tt.want {
				t.Errorf("ValidateDimensions(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestValidateDimensionsAnySemantics(t *testing.T) {
	// Dominating one good resolution is enough, even while being smaller
	// than another.
	good := domain.NewResolutionSet(
		domain.Resolution{Width: 1280, Height: 720},
		domain.Resolution{Width: 3840, Height: 2160},
	)
	if got := ValidateDimensions(1920, 1080, good); got != domain.ImageLarger {
		t.Errorf("got %v, want LARGER when any good resolution is dominated", got)
	}
}
