package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/porese500/simulacros/internal/domain/model"
)

// PathID читает целочисленный параметр пути
func PathID(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %s", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// StatusFromError HTTP-статус для ошибки сервиса
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidDuration),
		errors.Is(err, model.ErrInvalidOption),
		errors.Is(err, model.ErrEmptyQuestion),
		errors.Is(err, model.ErrMissingOption),
		errors.Is(err, model.ErrEmptyName),
		errors.Is(err, model.ErrUnknownRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
