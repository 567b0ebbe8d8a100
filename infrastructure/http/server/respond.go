package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"multilingo/domain/mimetypes"
	"multilingo/errors"
	"net/http"
)

var (
	errBodyTooLarge      = fmt.Errorf("request body too large")
	errUnsupportedMedia  = fmt.Errorf("request body is not text")
	errMalformedBody     = fmt.Errorf("invalid JSON body")
	errInvalidValueField = fmt.Errorf("invalid value type")
)

type problem struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, problem{Detail: detail})
}

// readBody bounds the body size and rejects content that is not text.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	if !mimetypes.IsText(body) {
		return nil, errUnsupportedMedia
	}
	return body, nil
}

// decodeJSON reads a bounded text body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := s.readBody(w, r)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			return fmt.Errorf("%w: field %q must be a %s", errInvalidValueField, typeErr.Field, kindName(typeErr))
		}
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	return nil
}

func kindName(err *json.UnmarshalTypeError) string {
	if err.Type == nil {
		return "valid value"
	}
	return err.Type.Kind().String()
}

// bodyStatus maps body reading failures to their status code.
func bodyStatus(err error) int {
	switch {
	case stderrors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case stderrors.Is(err, errUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case stderrors.Is(err, errInvalidValueField):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// errorStatus maps service errors to their status code.
func errorStatus(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrStringNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrStringAlreadyExists):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrConflictingFilters):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrUnparsableQuery), stderrors.Is(err, errors.ErrInvalidFilter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "error", err)
		writeProblem(w, status, "internal server error")
		return
	}
	writeProblem(w, status, err.Error())
}
