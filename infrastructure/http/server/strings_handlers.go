package server

import (
	"fmt"
	"multilingo/domain"
	"multilingo/errors"
	"net/http"
	"strconv"

	"github.com/samber/lo"
)

type createStringRequest struct {
	Value *string `json:"value" validate:"required"`
}

type listResponse struct {
	Data           []domain.StringRecord `json:"data"`
	Count          int                   `json:"count"`
	FiltersApplied map[string]any        `json:"filters_applied"`
}

type naturalResponse struct {
	Data             []domain.StringRecord `json:"data"`
	Count            int                   `json:"count"`
	InterpretedQuery interpretedQuery      `json:"interpreted_query"`
}

type interpretedQuery struct {
	Original      string         `json:"original"`
	ParsedFilters map[string]any `json:"parsed_filters"`
}

type searchResponse struct {
	Data  []domain.StringRecord `json:"data"`
	Count int                   `json:"count"`
	Total uint64                `json:"total"`
	Query string                `json:"query"`
}

func (s *Server) handleCreateString(w http.ResponseWriter, r *http.Request) {
	var body createStringRequest
	if err := s.decodeJSON(w, r, &body); err != nil {
		writeProblem(w, bodyStatus(err), err.Error())
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, `missing "value" field`)
		return
	}
	record, err := s.records.Create(r.Context(), *body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleGetString(w http.ResponseWriter, r *http.Request) {
	record, err := s.records.Get(r.Context(), r.PathValue("value"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteString(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Delete(r.Context(), r.PathValue("value")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStrings(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err == nil {
		err = s.validate.Struct(filter)
	}
	if err != nil {
		writeProblem(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameter values or types: %v", err))
		return
	}
	records, err := s.records.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Data:           lo.Ternary(records == nil, []domain.StringRecord{}, records),
		Count:          len(records),
		FiltersApplied: lo.Ternary(filter.IsEmpty(), map[string]any{}, filter.Applied()),
	})
}

func (s *Server) handleNaturalFilter(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("query")
	if text == "" {
		writeProblem(w, http.StatusBadRequest, `missing "query" parameter`)
		return
	}
	filter, records, err := s.records.FilterNatural(r.Context(), text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, naturalResponse{
		Data:  lo.Ternary(records == nil, []domain.StringRecord{}, records),
		Count: len(records),
		InterpretedQuery: interpretedQuery{
			Original:      text,
			ParsedFilters: filter.Applied(),
		},
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	terms := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeProblem(w, http.StatusBadRequest, `"limit" must be a positive integer`)
			return
		}
		limit = n
	}
	records, total, err := s.records.Search(r.Context(), terms, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Data:  lo.Ternary(records == nil, []domain.StringRecord{}, records),
		Count: len(records),
		Total: total,
		Query: terms,
	})
}

// parseFilter reads the structured list filters from the query string.
func parseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	var filter domain.Filter
	if raw := q.Get("is_palindrome"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: is_palindrome=%q", errors.ErrInvalidFilter, raw)
		}
		filter.IsPalindrome = &v
	}
	ints := []struct {
		name string
		dst  **int
	}{
		{"min_length", &filter.MinLength},
		{"max_length", &filter.MaxLength},
		{"word_count", &filter.WordCount},
	}
	for _, param := range ints {
		raw := q.Get(param.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: %s=%q", errors.ErrInvalidFilter, param.name, raw)
		}
		*param.dst = &v
	}
	if raw := q.Get("contains_character"); raw != "" {
		filter.ContainsCharacter = &raw
	}
	return filter, nil
}
