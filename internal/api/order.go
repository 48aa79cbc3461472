package api

import (
	"net/http"

	"storevista-be/internal/order"
	"storevista-be/internal/utils"
)

// PlaceOrder accepts guests and signed-in buyers alike.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input order.PlaceOrderInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.PlaceOrder(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) OrderStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.Orders.LookupStatus(r.Context(), r.URL.Query().Get("ref"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !view.Found {
		utils.WriteJSON(w, http.StatusNotFound, view)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListStoreOrders(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) OrderSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Orders.Summary(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body statusUpdate
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.UpdateStatus(r.Context(), callerID(r), id, status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
