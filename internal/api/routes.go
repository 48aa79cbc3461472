package api

import (
	"net/http"

	"storevista-be/internal/middleware"
)

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	auth := middleware.RequireAuth

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /api/users/register/{$}", h.Register)
	mux.HandleFunc("POST /api/users/login/{$}", h.Login)

	mux.HandleFunc("GET /api/stores/{$}", h.ListStores)
	mux.HandleFunc("POST /api/stores/{$}", auth(h.CreateStore))
	mux.HandleFunc("GET /api/stores/mine/{$}", auth(h.MyStore))
	mux.HandleFunc("GET /api/stores/chat-search/{$}", h.ChatSearch)
	mux.HandleFunc("GET /api/chat-search/{$}", h.ChatSearch)
	mux.HandleFunc("GET /api/stores/{slug}/{$}", h.GetStore)
	mux.HandleFunc("PATCH /api/stores/{slug}/{$}", auth(h.UpdateStore))

	mux.HandleFunc("GET /api/products/{$}", h.ListProducts)
	mux.HandleFunc("POST /api/products/{$}", auth(h.CreateProduct))
	mux.HandleFunc("GET /api/products/{id}/{$}", h.GetProduct)
	mux.HandleFunc("PATCH /api/products/{id}/{$}", auth(h.UpdateProduct))

	mux.HandleFunc("POST /api/orders/{$}", h.PlaceOrder)
	mux.HandleFunc("GET /api/orders/{$}", auth(h.ListOrders))
	mux.HandleFunc("GET /api/orders/status/{$}", h.OrderStatus)
	mux.HandleFunc("GET /api/orders/summary/{$}", auth(h.OrderSummary))
	mux.HandleFunc("PATCH /api/orders/{id}/status/{$}", auth(h.UpdateOrderStatus))
}
