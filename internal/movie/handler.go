package movie

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/binhbb2204/Top-Movies/internal/forms"
	"github.com/binhbb2204/Top-Movies/internal/tmdb"
	"github.com/binhbb2204/Top-Movies/pkg/logger"
	"github.com/binhbb2204/Top-Movies/pkg/metrics"
	"github.com/binhbb2204/Top-Movies/pkg/models"
	"github.com/gin-gonic/gin"
)

// Handler serves the movie list pages.
type Handler struct {
	store  Store
	source tmdb.Source
	log    *logger.Logger
}

// NewHandler creates a new movie handler
func NewHandler(store Store, source tmdb.Source, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		source: source,
		log:    log.WithContext("component", "movie_handler"),
	}
}

// editFormValues echoes the raw edit form back to the user.
type editFormValues struct {
	Rating string
	Review string
}

// Home lists every movie with freshly computed rankings.
func (h *Handler) Home(c *gin.Context) {
	movies, err := h.store.ListRanked(c.Request.Context())
	if err != nil {
		h.log.Error("list_movies_failed", "error", err.Error(), "request_id", c.GetString("request_id"))
		h.renderError(c, http.StatusInternalServerError, "Could not load your movies.")
		return
	}
	metrics.IncrementRankingsComputed()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Movies": movies,
	})
}

// AddForm renders the empty title form.
func (h *Handler) AddForm(c *gin.Context) {
	h.renderAdd(c, http.StatusOK, forms.AddInput{}, nil, "")
}

// Add validates the title and shows matching candidates from the metadata service.
func (h *Handler) Add(c *gin.Context) {
	raw := c.PostForm("title")
	in, err := forms.ParseAdd(raw)
	if err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			h.renderAdd(c, http.StatusBadRequest, forms.AddInput{Title: raw}, ve.Fields, "")
			return
		}
		h.renderError(c, http.StatusInternalServerError, "Could not read the form.")
		return
	}

	metrics.IncrementSearches()
	candidates, err := h.source.Search(c.Request.Context(), in.Title)
	if err != nil {
		metrics.IncrementUpstreamFailures()
		h.log.Error("movie_search_failed", "title", in.Title, "error", err.Error(), "request_id", c.GetString("request_id"))
		h.renderAdd(c, http.StatusBadGateway, in, nil, "The movie database could not be searched right now. Please try again.")
		return
	}

	h.log.Debug("movie_search_done", "title", in.Title, "results", len(candidates))
	c.HTML(http.StatusOK, "select.html", gin.H{
		"Title":      "Select Movie",
		"Query":      in.Title,
		"Candidates": candidates,
	})
}

// Select stores the chosen candidate and sends the user on to rate it.
func (h *Handler) Select(c *gin.Context) {
	externalID := c.Query("id")
	if _, ok := parseID(externalID); !ok {
		h.renderNotFound(c, http.StatusOK, "Movie not found.")
		return
	}

	ctx := c.Request.Context()
	detail, err := h.source.Details(ctx, externalID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			h.renderNotFound(c, http.StatusOK, "Movie not found.")
			return
		}
		metrics.IncrementUpstreamFailures()
		h.log.Error("movie_details_failed", "external_id", externalID, "error", err.Error(), "request_id", c.GetString("request_id"))
		if errors.Is(err, tmdb.ErrMissingField) {
			h.renderError(c, http.StatusBadGateway, "The movie database returned incomplete details for this movie.")
			return
		}
		h.renderError(c, http.StatusBadGateway, "The movie database could not be reached right now. Please try again.")
		return
	}

	created, err := h.store.Create(ctx, NewMovieFromDetail(detail))
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			h.renderAdd(c, http.StatusConflict, forms.AddInput{Title: detail.Title}, nil,
				fmt.Sprintf("%q is already in your list.", detail.Title))
			return
		}
		h.log.Error("movie_create_failed", "external_id", externalID, "error", err.Error(), "request_id", c.GetString("request_id"))
		h.renderError(c, http.StatusInternalServerError, "Could not save the movie.")
		return
	}

	metrics.IncrementMoviesAdded()
	h.log.Info("movie_added", "id", created.ID, "title", created.Title, "external_id", externalID)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/update?id=%d", created.ID))
}

// EditForm renders the rating/review form for one movie.
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := parseID(c.Query("id"))
	if !ok {
		h.renderNotFound(c, http.StatusNotFound, "Movie not found.")
		return
	}

	m, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "get_movie_failed", id, err)
		return
	}

	values := editFormValues{}
	if m.Review != "" {
		values = editFormValues{Rating: strconv.FormatFloat(m.Rating, 'f', -1, 64), Review: m.Review}
	}
	h.renderEdit(c, http.StatusOK, m, values, nil)
}

// Edit validates and stores a new rating and review.
func (h *Handler) Edit(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		rawID = c.PostForm("id")
	}
	id, ok := parseID(rawID)
	if !ok {
		h.renderNotFound(c, http.StatusNotFound, "Movie not found.")
		return
	}

	ctx := c.Request.Context()
	m, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(c, "get_movie_failed", id, err)
		return
	}

	values := editFormValues{Rating: c.PostForm("rating"), Review: c.PostForm("review")}
	in, err := forms.ParseEdit(values.Rating, values.Review)
	if err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			h.renderEdit(c, http.StatusBadRequest, m, values, ve.Fields)
			return
		}
		h.renderError(c, http.StatusInternalServerError, "Could not read the form.")
		return
	}

	if err := h.store.Update(ctx, id, in.Rating, in.Review); err != nil {
		h.handleStoreError(c, "update_movie_failed", id, err)
		return
	}

	metrics.IncrementMoviesUpdated()
	h.log.Info("movie_rated", "id", id, "rating", in.Rating)
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a movie from the list.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		h.renderNotFound(c, http.StatusNotFound, "Movie not found.")
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, "delete_movie_failed", id, err)
		return
	}

	metrics.IncrementMoviesDeleted()
	h.log.Info("movie_deleted", "id", id)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) handleStoreError(c *gin.Context, event string, id int64, err error) {
	if errors.Is(err, ErrNotFound) {
		h.renderNotFound(c, http.StatusNotFound, "Movie not found.")
		return
	}
	h.log.Error(event, "id", id, "error", err.Error(), "request_id", c.GetString("request_id"))
	h.renderError(c, http.StatusInternalServerError, "Something went wrong talking to the database.")
}

func (h *Handler) renderAdd(c *gin.Context, status int, form forms.AddInput, fieldErrors map[string]string, message string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	c.HTML(status, "add.html", gin.H{
		"Title":   "Add Movie",
		"Form":    form,
		"Errors":  fieldErrors,
		"Message": message,
	})
}

func (h *Handler) renderEdit(c *gin.Context, status int, m models.Movie, values editFormValues, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	c.HTML(status, "edit.html", gin.H{
		"Title":  "Edit Movie",
		"Movie":  m,
		"Form":   values,
		"Errors": fieldErrors,
	})
}

func (h *Handler) renderNotFound(c *gin.Context, status int, message string) {
	c.HTML(status, "notfound.html", gin.H{
		"Title":   "Not Found",
		"Message": message,
	})
}

func (h *Handler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   "Error",
		"Message": message,
	})
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
