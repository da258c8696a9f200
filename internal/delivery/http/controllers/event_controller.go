package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

const (
	// maxCreateEventBody leaves room for the text fields next to a full-size image.
	maxCreateEventBody = domain.MaxImageSize + 1<<20
	multipartMemory    = 8 << 20
)

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for a list of events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from a multipart form. The image is uploaded to object storage and only its URL is stored. The slug is derived from the title.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title (max 100 characters)"
// @Param description formData string true "Description (max 1000 characters)"
// @Param overview formData string true "Overview (max 500 characters)"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date"
// @Param time formData string true "Time"
// @Param mode formData string true "Mode (online, offline, hybrid)"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param tags formData string true "JSON array of tags, e.g. [\"anime\",\"cosplay\"]"
// @Param agenda formData string true "JSON array of agenda items"
// @Param image formData file true "JPEG, PNG, WebP or GIF, at most 5MB"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateEventBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file size exceeds 5MB limit")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "request must be multipart/form-data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	params := &domain.CreateEventParams{
		EventFields: domain.EventFields{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Overview:    r.FormValue("overview"),
			Venue:       r.FormValue("venue"),
			Location:    r.FormValue("location"),
			Date:        r.FormValue("date"),
			Time:        r.FormValue("time"),
			Mode:        r.FormValue("mode"),
			Audience:    r.FormValue("audience"),
			Organizer:   r.FormValue("organizer"),
		},
		Tags:   r.FormValue("tags"),
		Agenda: r.FormValue("agenda"),
	}

	image, err := readImage(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read image upload")
		return
	}
	params.Image = image

	event, err := c.Service.CreateEvent(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// readImage returns the "image" form file, or nil when none was sent.
func readImage(r *http.Request) (*domain.ImageFile, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, domain.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	return &domain.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}

// ListEvents godoc
// @Summary List events
// @Description Returns the most recently created events, newest first.
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events (default and max 20)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context(), helpers.ParseLimit(r))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEventBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetSimilarEvents godoc
// @Summary List similar events
// @Description Returns other events sharing at least one tag with the given event. Unknown slugs yield an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.GetSimilarEvents(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
