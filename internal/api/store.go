package api

import (
	"net/http"

	"storevista-be/internal/product"
	"storevista-be/internal/store"
	"storevista-be/internal/utils"
)

type storeDetail struct {
	*store.Store
	Products []product.Product `json:"products"`
}

// ListStores ranks stores by distance when lat and lng are given.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	views, err := h.Stores.List(r.Context(), q.Get("lat"), q.Get("lng"), q.Get("radius"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	products, err := h.Products.List(r.Context(), st.Slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, storeDetail{Store: st, Products: products})
}

func (h *Handler) MyStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.Stores.Mine(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var input store.CreateInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	st, err := h.Stores.Create(r.Context(), callerID(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, st)
}

func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	var input store.UpdateInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	st, err := h.Stores.Update(r.Context(), callerID(r), r.PathValue("slug"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}
