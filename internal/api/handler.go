package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storevista-be/internal/logger"
	"storevista-be/internal/metrics"
	"storevista-be/internal/order"
	"storevista-be/internal/product"
	"storevista-be/internal/search"
	"storevista-be/internal/store"
	"storevista-be/internal/user"
	"storevista-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler serves the REST API on top of the domain services.
type Handler struct {
	Users    user.Service
	Stores   store.Service
	Products product.Service
	Search   search.Service
	Orders   order.Service
	Stats    *metrics.OrderStats
}

func NewHandler(
	users user.Service,
	stores store.Service,
	products product.Service,
	searchSvc search.Service,
	orders order.Service,
	stats *metrics.OrderStats,
) *Handler {
	return &Handler{
		Users:    users,
		Stores:   stores,
		Products: products,
		Search:   searchSvc,
		Orders:   orders,
		Stats:    stats,
	}
}

// badRequest is a malformed request the caller can fix.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &badRequest{msg: "invalid JSON payload"}
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &badRequest{msg: fmt.Sprintf("invalid %s", name)}
	}
	return id, nil
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	var (
		bad        *badRequest
		orderErr   *order.ValidationError
		storeErr   *store.ValidationError
		productErr *product.ValidationError
		userErr    *user.ValidationError
	)

	switch {
	case errors.As(err, &bad),
		errors.As(err, &orderErr),
		errors.As(err, &storeErr),
		errors.As(err, &productErr),
		errors.As(err, &userErr),
		errors.Is(err, order.ErrEmptyReference):
		return http.StatusBadRequest

	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, product.ErrNoStore),
		errors.Is(err, product.ErrForbidden),
		errors.Is(err, store.ErrForbidden),
		errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrSlugTaken),
		errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}

// callerID is only called behind RequireAuth.
func callerID(r *http.Request) int64 {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "OK"}
	if h.Stats != nil {
		snap, err := h.Stats.Snapshot(r.Context())
		if err != nil {
			logger.FromCtx(r.Context()).Warn("order stats unavailable", zap.Error(err))
		} else {
			body["orders"] = snap
		}
	}
	utils.WriteJSON(w, http.StatusOK, body)
}
