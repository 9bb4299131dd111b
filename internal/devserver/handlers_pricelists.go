package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dverenev/priceadmin/internal/common"
)

func parseListFilter(r *http.Request) listFilter {
	q := r.URL.Query()
	f := listFilter{
		sortField: q.Get("sort_field"),
		sortDir:   q.Get("sort_direction"),
		search:    q.Get("search"),
	}
	f.page, _ = strconv.Atoi(q.Get("page"))
	f.limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("date_from"); v != "" {
		f.dateFrom, _ = time.Parse(time.RFC3339, v)
	}
	if v := q.Get("date_to"); v != "" {
		f.dateTo, _ = time.Parse(time.RFC3339, v)
	}
	return f
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, total := s.store.list(parseListFilter(r))
	respondList(w, items, total)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid price list id")
		return
	}

	p, err := s.store.get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "price list not found")
		return
	}
	respondData(w, http.StatusOK, p)
}

type priceListRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req priceListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "name must be between 1 and 255 characters")
		return
	}

	p, err := s.store.create(req.Name)
	if err != nil {
		if errors.Is(err, common.ErrNameTaken) {
			respondError(w, http.StatusConflict, "a price list with this name already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create price list")
		return
	}
	respondData(w, http.StatusCreated, p)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid price list id")
		return
	}

	var req priceListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "name must be between 1 and 255 characters")
		return
	}

	p, err := s.store.update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			respondError(w, http.StatusNotFound, "price list not found")
		case errors.Is(err, common.ErrNameTaken):
			respondError(w, http.StatusConflict, "a price list with this name already exists")
		default:
			respondError(w, http.StatusInternalServerError, "failed to update price list")
		}
		return
	}
	respondData(w, http.StatusOK, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid price list id")
		return
	}

	if err := s.store.delete(id); err != nil {
		respondError(w, http.StatusNotFound, "price list not found")
		return
	}
	respondMessage(w, http.StatusOK, nil, "Price list deleted.")
}

type checkNameResponse struct {
	Available bool `json:"available"`
}

func (s *Server) handleCheckName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	excludeID, _ := strconv.ParseInt(r.URL.Query().Get("exclude_id"), 10, 64)

	respondData(w, http.StatusOK, checkNameResponse{
		Available: s.store.nameAvailable(name, excludeID),
	})
}
