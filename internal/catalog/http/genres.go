package http

import (
	"encoding/json"
	"net/http"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/pkg/httpx"
)

// GenreHandler serves the /v1/genres endpoints.
type GenreHandler struct {
	GenreService *service.GenreService
}

type genreRequest struct {
	Name string `json:"name"`
}

// HandleList godoc
//
//	@Summary	List genres
//	@Tags		Genres
//	@Produce	json
//	@Param		page	query		int	false	"page number, 1-based"
//	@Param		take	query		int	false	"page size"
//	@Success	200		{array}		domain.Genre
//	@Router		/v1/genres [get].
func (h *GenreHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.GenreService.ListGenres(r.Context(), parsePage(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if genres == nil {
		genres = []domain.Genre{}
	}
	httpx.WriteJSON(w, http.StatusOK, genres)
}

// HandleGet godoc
//
//	@Summary	Fetch one genre
//	@Tags		Genres
//	@Produce	json
//	@Param		id	path		int	true	"genre id"
//	@Success	200	{object}	domain.Genre
//	@Failure	404	{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/genres/{id} [get].
func (h *GenreHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	genre, err := h.GenreService.GetGenre(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, genre)
}

// HandleCreate godoc
//
//	@Summary	Create a genre
//	@Tags		Genres
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		genre	body		genreRequest	true	"genre submission"
//	@Success	201		{object}	domain.Genre
//	@Failure	409		{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/genres [post].
func (h *GenreHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeGenre(w, r)
	if !ok {
		return
	}

	genre, err := h.GenreService.CreateGenre(r.Context(), domain.Genre{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, genre)
}

// HandleUpdate godoc
//
//	@Summary	Rename a genre
//	@Tags		Genres
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int				true	"genre id"
//	@Param		genre	body		genreRequest	true	"new name"
//	@Success	200		{object}	domain.Genre
//	@Failure	404		{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/genres/{id} [put].
func (h *GenreHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeGenre(w, r)
	if !ok {
		return
	}

	genre, err := h.GenreService.UpdateGenre(r.Context(), domain.Genre{ID: id, Name: req.Name})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, genre)
}

// HandleDelete godoc
//
//	@Summary	Delete a genre
//	@Tags		Genres
//	@Security	BearerAuth
//	@Param		id	path	int	true	"genre id"
//	@Success	204	"no content"
//	@Failure	404	{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/genres/{id} [delete].
func (h *GenreHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.GenreService.DeleteGenre(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeGenre(w http.ResponseWriter, r *http.Request) (genreRequest, bool) {
	var req genreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return genreRequest{}, false
	}
	if req.Name == "" {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "name is required"}.WriteError(w)
		return genreRequest{}, false
	}
	return req, true
}
