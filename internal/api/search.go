package api

import (
	"net/http"

	"storevista-be/internal/utils"
)

func (h *Handler) ChatSearch(w http.ResponseWriter, r *http.Request) {
	res, err := h.Search.ChatSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
