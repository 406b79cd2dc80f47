package dto

import "time"

type SubmissionResponse struct {
	PostID        string          `json:"post_id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Permalink     string          `json:"permalink"`
	Domain        string          `json:"domain"`
	Type          string          `json:"type"`
	Result        string          `json:"result"`
	Response      string          `json:"response,omitempty"`
	Resolutions   []string        `json:"resolutions,omitempty"`
	Images        []ImageResponse `json:"images,omitempty"`
	DateSubmitted time.Time       `json:"date_submitted"`
	DateProcessed time.Time       `json:"date_processed"`
}

type ImageResponse struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Result string `json:"result"`
}

type ListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

type CheckRequest struct {
	PostIDs []string `json:"post_ids" validate:"required,min=1,max=100,dive,required"`
}

type CheckResponse struct {
	Queued int `json:"queued"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
