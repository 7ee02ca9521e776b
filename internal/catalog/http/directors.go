package http

import (
	"encoding/json"
	"net/http"

	"github.com/kinotek/kinotek/internal/catalog/domain"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/pkg/httpx"
)

// DirectorHandler serves the /v1/directors endpoints.
type DirectorHandler struct {
	DirectorService *service.DirectorService
}

type directorRequest struct {
	Name        string `json:"name"`
	DOB         string `json:"dob"`
	Nationality string `json:"nationality"`
}

// HandleList godoc
//
//	@Summary	List directors
//	@Tags		Directors
//	@Produce	json
//	@Param		page	query		int	false	"page number, 1-based"
//	@Param		take	query		int	false	"page size"
//	@Success	200		{array}		domain.Director
//	@Router		/v1/directors [get].
func (h *DirectorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	directors, err := h.DirectorService.ListDirectors(r.Context(), parsePage(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if directors == nil {
		directors = []domain.Director{}
	}
	httpx.WriteJSON(w, http.StatusOK, directors)
}

// HandleGet godoc
//
//	@Summary	Fetch one director
//	@Tags		Directors
//	@Produce	json
//	@Param		id	path		int	true	"director id"
//	@Success	200	{object}	domain.Director
//	@Failure	404	{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/directors/{id} [get].
func (h *DirectorHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	director, err := h.DirectorService.GetDirector(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, director)
}

// HandleCreate godoc
//
//	@Summary	Create a director
//	@Tags		Directors
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		director	body		directorRequest	true	"director submission"
//	@Success	201			{object}	domain.Director
//	@Failure	400			{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/directors [post].
func (h *DirectorHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDirector(w, r)
	if !ok {
		return
	}

	director, err := h.DirectorService.CreateDirector(r.Context(), domain.Director{
		Name:        req.Name,
		DOB:         req.DOB,
		Nationality: req.Nationality,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, director)
}

// HandleUpdate godoc
//
//	@Summary	Update a director
//	@Tags		Directors
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"director id"
//	@Param		director	body		directorRequest	true	"full replacement"
//	@Success	200			{object}	domain.Director
//	@Failure	404			{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/directors/{id} [put].
func (h *DirectorHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := decodeDirector(w, r)
	if !ok {
		return
	}

	director, err := h.DirectorService.UpdateDirector(r.Context(), domain.Director{
		ID:          id,
		Name:        req.Name,
		DOB:         req.DOB,
		Nationality: req.Nationality,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, director)
}

// HandleDelete godoc
//
//	@Summary	Delete a director
//	@Tags		Directors
//	@Security	BearerAuth
//	@Param		id	path	int	true	"director id"
//	@Success	204	"no content"
//	@Failure	404	{object}	httpx.APIError	"error, error_description"
//	@Router		/v1/directors/{id} [delete].
func (h *DirectorHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.DirectorService.DeleteDirector(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeDirector(w http.ResponseWriter, r *http.Request) (directorRequest, bool) {
	var req directorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errInvalidBody.WriteError(w)
		return directorRequest{}, false
	}
	if req.Name == "" || req.DOB == "" {
		httpx.APIError{Status: http.StatusBadRequest, Code: "invalid_request",
			Message: "name and dob are required"}.WriteError(w)
		return directorRequest{}, false
	}
	return req, true
}
