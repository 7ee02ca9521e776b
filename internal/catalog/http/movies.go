package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/pkg/httpx"
	"github.com/kinotek/kinotek/pkg/pagex"
)

// MovieHandler serves the /v1/movies endpoints.
type MovieHandler struct {
	MovieService *service.MovieService
}

type movieCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DirectorID  int64   `json:"director_id"`
	GenreIDs    []int64 `json:"genre_ids"`
}

type movieUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	DirectorID  *int64   `json:"director_id"`
	GenreIDs    *[]int64 `json:"genre_ids"`
}

type moviePageResponse struct {
	Data       []domain.Movie `json:"data"`
	Count      int64          `json:"count"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// HandleList godoc
//
//	@Summary		List movies
//	@Description	Cursor-paginated movie listing. The order embedded in a cursor overrides any order parameters sent with it.
//	@Tags			Movies
//	@Produce		json
//	@Param			title	query		string				false	"substring title filter"
//	@Param			order	query		[]string			false	"sort spec, e.g. title_DESC"	collectionFormat(multi)
//	@Param			take	query		int					false	"page size"
//	@Param			cursor	query		string				false	"continuation token from the previous page"
//	@Success		200		{object}	moviePageResponse	"data, count, next_cursor"
//	@Failure		400		{object}	httpx.APIError		"error, error_description"
//	@Router			/v1/movies [get].
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	take := 0
	if v := q.Get("take"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
				Message: "take must be a positive integer"}.WriteError(w)
			return
		}
		take = n
	}

	page, err := h.MovieService.ListMovies(r.Context(), store.MovieListQuery{
		Title:    q.Get("title"),
		Cursor:   q.Get("cursor"),
		Order:    q["order"],
		Take:     take,
		ViewerID: httpx.UserIDFromContext(r.Context()),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, moviePageResponse{
		Data:       page.Movies,
		Count:      page.Count,
		NextCursor: page.NextCursor,
	})
}

// HandleGet godoc
//
//	@Summary		Fetch one movie
//	@Tags			Movies
//	@Produce		json
//	@Param			id	path		int	true	"movie id"
//	@Success		200	{object}	domain.Movie
//	@Failure		404	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies/{id} [get].
func (h *MovieHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := h.MovieService.GetMovie(r.Context(), id, httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, movie)
}

// HandleCreate godoc
//
//	@Summary		Create a movie
//	@Tags			Movies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			movie	body		movieCreateRequest	true	"movie submission"
//	@Success		201		{object}	domain.Movie
//	@Failure		400		{object}	httpx.APIError	"error, error_description"
//	@Failure		403		{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies [post].
func (h *MovieHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}
	if req.Title == "" || req.DirectorID <= 0 {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "title and director_id are required"}.WriteError(w)
		return
	}

	movie, err := h.MovieService.CreateMovie(r.Context(), service.CreateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		DirectorID:  req.DirectorID,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, movie)
}

// HandleUpdate godoc
//
//	@Summary		Update a movie
//	@Description	Partial update: absent fields keep their current values.
//	@Tags			Movies
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"movie id"
//	@Param			movie	body		movieUpdateRequest	true	"fields to change"
//	@Success		200		{object}	domain.Movie
//	@Failure		400		{object}	httpx.APIError	"error, error_description"
//	@Failure		404		{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies/{id} [patch].
func (h *MovieHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req movieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return
	}

	movie, err := h.MovieService.UpdateMovie(r.Context(), id, service.UpdateMovieInput{
		Title:       req.Title,
		Description: req.Description,
		DirectorID:  req.DirectorID,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, movie)
}

// HandleDelete godoc
//
//	@Summary		Delete a movie
//	@Tags			Movies
//	@Security		BearerAuth
//	@Param			id	path	int	true	"movie id"
//	@Success		204	"no content"
//	@Failure		404	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies/{id} [delete].
func (h *MovieHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.MovieService.DeleteMovie(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLike godoc
//
//	@Summary		Like a movie
//	@Description	Toggles the viewer's like: liking twice clears it, liking a disliked movie switches sides.
//	@Tags			Movies
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"movie id"
//	@Success		200	{object}	domain.Movie
//	@Failure		401	{object}	httpx.APIError	"error, error_description"
//	@Failure		404	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies/{id}/like [post].
func (h *MovieHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, true)
}

// HandleDislike godoc
//
//	@Summary		Dislike a movie
//	@Tags			Movies
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"movie id"
//	@Success		200	{object}	domain.Movie
//	@Failure		401	{object}	httpx.APIError	"error, error_description"
//	@Failure		404	{object}	httpx.APIError	"error, error_description"
//	@Router			/v1/movies/{id}/dislike [post].
func (h *MovieHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, false)
}

func (h *MovieHandler) react(w http.ResponseWriter, r *http.Request, like bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := h.MovieService.React(r.Context(), id, httpx.UserIDFromContext(r.Context()), like)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, movie)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		errInvalidID.WriteError(w)
		return 0, false
	}
	return id, true
}

// parsePage reads page/take query parameters for offset-paginated listings.
func parsePage(r *http.Request) pagex.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	take, _ := strconv.Atoi(q.Get("take"))
	return pagex.PageRequest{Page: page, Take: take}
}
