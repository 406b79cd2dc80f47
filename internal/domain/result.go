package domain

// ImageResult is the outcome of validating one image against the good
// resolutions declared in the post title.
type ImageResult string

const (
	ImageLarger           ImageResult = "IMAGE LARGER THAN TITLE"
	ImageSmaller          ImageResult = "IMAGE SMALLER THAN TITLE"
	ImageUnsupportedMedia ImageResult = "UNSUPPORTED MEDIA TYPE"
	ImageValid            ImageResult = "VALID"
)

// PostResult is the post-level verdict. It shares labels with ImageResult
// and adds the early-exit outcomes that fire before any image is checked.
type PostResult string

const (
	PostLarger              PostResult = PostResult(ImageLarger)
	PostNoResolution        PostResult = "NO RESOLUTION IN TITLE"
	PostSmaller             PostResult = PostResult(ImageSmaller)
	PostUnsupportedMedia    PostResult = PostResult(ImageUnsupportedMedia)
	PostUnsupportedRes      PostResult = "UNSUPPORTED RESOLUTION"
	PostUnsupportedTypeLink PostResult = "UNSUPPORTED POST TYPE OR LINK"
	PostValid               PostResult = "VALID"
	PostModpost             PostResult = "MODPOST"
)

type PostType string

const (
	PostTypeGallery PostType = "GALLERY"
	PostTypeImage   PostType = "IMAGE"
	PostTypeUnknown PostType = "UNKNOWN"
)

// imageResultSeverity is the fixed ranking used to reduce many image
// outcomes to one post outcome: the highest-severity result wins.
var imageResultSeverity = map[ImageResult]int{
	ImageValid:            0,
	ImageLarger:           1,
	ImageUnsupportedMedia: 2,
	ImageSmaller:          3,
}

// Severity returns the aggregation rank of r.
func Severity(r ImageResult) int {
	return imageResultSeverity[r]
}

// PostResult converts an image-level result to its post-level label.
func (r ImageResult) PostResult() PostResult {
	return PostResult(r)
}
