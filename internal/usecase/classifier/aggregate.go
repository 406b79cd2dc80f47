package classifier

import "wallpapermod/internal/domain"

// Aggregate reduces a submission's image results to one post result:
// the highest-severity image outcome wins, starting from VALID. The
// reduction is commutative, so image order never changes the verdict.
// Callers guarantee a non-empty list; empty-image submissions exit
// earlier through the post-level outcomes.
func Aggregate(images []*domain.Image) domain.PostResult {
	result := domain.ImageValid
	for _, img := range images {
		if domain.Severity(img.Result) > domain.Severity(result) {
			result = img.Result
		}
	}
	return result.PostResult()
}
