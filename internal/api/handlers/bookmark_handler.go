package handlers

import (
	"encoding/json"
	"net/http"

	"landmark-map/internal/services"
)

type BookmarkHandler struct {
	bookmarkService services.BookmarkService
}

func NewBookmarkHandler(bookmarkService services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// GetBookmarks returns every stored landmark partitioned into summary
// buckets for the sidebar view.
func (h *BookmarkHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := services.UserFromContext(ctx); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groups, err := h.bookmarkService.GroupBookmarks(ctx)
	if err != nil {
		http.Error(w, "Error fetching bookmarks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}
