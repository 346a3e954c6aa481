package employees

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crewdesk/crewdesk/internal/platform/httpx"
)

// ServicePort defines the operations the transport layer relies on.
type ServicePort interface {
	Create(ctx context.Context, fields FieldSet) (Employee, error)
	List(ctx context.Context, limit, offset int) ([]Employee, int, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Update(ctx context.Context, id int64, fields FieldSet) (Employee, error)
	Delete(ctx context.Context, id int64) (DeleteResult, error)
}

// Handler wires the employee HTTP endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

type listResponse struct {
	Employees []Employee `json:"employees"`
	Count     int        `json:"count"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var fields FieldSet
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "offset must be an integer")
		return
	}

	records, count, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Employees: records, Count: count})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, record)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var fields FieldSet
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// respondError is the sole translator from domain errors to protocol
// responses.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		httpx.FieldErrors(w, http.StatusBadRequest, validationErr.Fields)
	case errors.As(err, &conflictErr):
		httpx.FieldErrors(w, http.StatusConflict, conflictErr.Fields)
	case errors.As(err, &notFoundErr):
		httpx.Error(w, http.StatusNotFound, notFoundErr.Error())
	default:
		h.logger.ErrorContext(r.Context(), "employee request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
