package submission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wallpapermod/internal/domain"
	"wallpapermod/internal/http-server/handler/submission/dto"
	submission_uc "wallpapermod/internal/usecase/submission"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type SubmissionHandler struct {
	usecase  submissionUsecase
	recheck  recheckPublisher
	validate *validator.Validate
	logger   *zlog.Zerolog
}

// NewSubmissionHandler builds the handler. recheck may be nil when the
// recheck queue is disabled.
func NewSubmissionHandler(usecase submissionUsecase, recheck recheckPublisher, logger *zlog.Zerolog) *SubmissionHandler {
	return &SubmissionHandler{
		usecase:  usecase,
		recheck:  recheck,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := parseIntParam(r.URL.Query().Get("limit"), defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := parseIntParam(r.URL.Query().Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	subs, err := h.usecase.List(ctx, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list submissions")
		h.respondError(w, http.StatusInternalServerError, "Failed to list submissions", err)
		return
	}

	response := dto.ListResponse{
		Submissions: make([]dto.SubmissionResponse, 0, len(subs)),
		Limit:       limit,
		Offset:      offset,
	}
	for _, sub := range subs {
		response.Submissions = append(response.Submissions, toSubmissionResponse(sub))
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID := chi.URLParam(r, "postID")
	if postID == "" {
		h.respondError(w, http.StatusBadRequest, "Post ID is required", nil)
		return
	}

	sub, err := h.usecase.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, submission_uc.ErrSubmissionNotFound) {
			h.respondError(w, http.StatusNotFound, "Submission not found", nil)
			return
		}
		h.logger.Error().Err(err).Str("post_id", postID).Msg("Failed to get submission")
		h.respondError(w, http.StatusInternalServerError, "Failed to get submission", err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// CheckSubmissions queues posts for re-evaluation by the bot.
func (h *SubmissionHandler) CheckSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.recheck == nil {
		h.respondError(w, http.StatusServiceUnavailable, "Recheck queue is disabled", nil)
		return
	}

	var req dto.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request format", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	queued := 0
	for _, postID := range req.PostIDs {
		payload, err := json.Marshal(domain.RecheckRequest{PostID: postID})
		if err != nil {
			h.logger.Error().Err(err).Str("post_id", postID).Msg("Failed to marshal recheck request")
			continue
		}
		if err := h.recheck.Publish(ctx, []byte(postID), payload); err != nil {
			h.logger.Error().Err(err).Str("post_id", postID).Msg("Failed to queue recheck")
			continue
		}
		queued++
	}

	if queued == 0 {
		h.respondError(w, http.StatusInternalServerError, "Failed to queue rechecks", nil)
		return
	}

	h.logger.Info().Int("queued", queued).Msg("Rechecks queued")
	h.respondJSON(w, http.StatusAccepted, dto.CheckResponse{Queued: queued})
}

func toSubmissionResponse(sub *domain.Submission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		PostID:        sub.PostID,
		Title:         sub.Title,
		Author:        sub.Author,
		Permalink:     sub.Permalink,
		Domain:        sub.Domain,
		Type:          string(sub.Type),
		Result:        string(sub.Result),
		Response:      sub.Response,
		DateSubmitted: sub.DateSubmitted,
		DateProcessed: sub.DateProcessed,
	}
	for _, res := range sub.Res {
		resp.Resolutions = append(resp.Resolutions, res.String())
	}
	for _, img := range sub.Images {
		resp.Images = append(resp.Images, dto.ImageResponse{
			URL:    img.URL,
			Format: img.Format,
			Width:  img.X,
			Height: img.Y,
			Result: string(img.Result),
		})
	}
	return resp
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (h *SubmissionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Interface("data", data).Msg("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *SubmissionHandler) respondError(w http.ResponseWriter, status int, message string, err error) {
	response := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}

	if err != nil {
		response.Details = err.Error()
	}

	h.respondJSON(w, status, response)
}
