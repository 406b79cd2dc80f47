package classifier

import "wallpapermod/internal/domain"

// ValidateDimensions compares one image's actual pixel size against the
// good resolutions declared in the title. An exact member is VALID. An
// image at least as large in both axes as ANY single good resolution is
// LARGER; dominating one declared size is enough. Otherwise SMALLER.
func ValidateDimensions(width, height int, good domain.ResolutionSet) domain.ImageResult {
	if good.Contains(domain.Resolution{Width: width, Height: height}) {
		return domain.ImageValid
	}
	for r := range good {
		if width >= r.Width && height >= r.Height {
			return domain.ImageLarger
		}
	}
	return domain.ImageSmaller
}
