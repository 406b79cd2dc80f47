package domain

import "time"

const (
	KafkaTopicClassified = "submissions-classified"
	KafkaTopicRecheck    = "submissions-recheck"
	KafkaGroupID         = "wallpapermod-group"
)

const (
	BucketEvidence     = "evidence"
	PathPrefixEvidence = "evidence/"
)

// ClassificationEvent is published once per processed submission.
type ClassificationEvent struct {
	EventID     string         `json:"event_id"`
	PostID      string         `json:"post_id"`
	Title       string         `json:"title"`
	Type        PostType       `json:"type"`
	Result      PostResult     `json:"result"`
	Images      []ImageOutcome `json:"images,omitempty"`
	ProcessedAt time.Time      `json:"processed_at"`
}

type ImageOutcome struct {
	URL    string      `json:"url"`
	Format string      `json:"format,omitempty"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Result ImageResult `json:"result"`
}

// RecheckRequest asks the bot to re-evaluate one specific post.
type RecheckRequest struct {
	PostID string `json:"post_id"`
}

// NewClassificationEvent flattens a finished submission into its event form.
func NewClassificationEvent(eventID string, sub *Submission) ClassificationEvent {
	ev := ClassificationEvent{
		EventID:     eventID,
		PostID:      sub.PostID,
		Title:       sub.Title,
		Type:        sub.Type,
		Result:      sub.Result,
		ProcessedAt: sub.DateProcessed,
	}
	for _, img := range sub.Images {
		ev.Images = append(ev.Images, ImageOutcome{
			URL:    img.URL,
			Format: img.Format,
			Width:  img.X,
			Height: img.Y,
			Result: img.Result,
		})
	}
	return ev
}
