package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	ContactInfo string `json:"contactInfo"`
	ImageURL    string `json:"imageUrl"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ItemFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := Identity(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := model.ValidateNewItem(model.ItemFields{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Location:    req.Location,
		Date:        req.Date,
		ContactInfo: req.ContactInfo,
	})
	if len(errs) > 0 {
		jsonValidationError(w, errs)
		return
	}

	// Owner identity always comes from the token, never the request body.
	item, err := store.CreateItem(r.Context(), h.DB, &model.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Location:    req.Location,
		Date:        req.Date,
		ContactInfo: req.ContactInfo,
		ImageURL:    req.ImageURL,
		OwnerID:     identity.UserID,
		OwnerName:   identity.Name,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item created", "item", item.ID, "owner", identity.UserID)
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}. The whole record is replaced: fields
// omitted from the body are stored empty, so callers must re-send every
// field they want to keep.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := Identity(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.OwnerID != identity.UserID {
		jsonError(w, http.StatusForbidden, "not authorized to modify this item")
		return
	}

	var fields model.ItemFields
	if err := decodeJSON(r, &fields); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := store.UpdateItem(r.Context(), h.DB, id, fields)
	if err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if updated == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	slog.Info("item updated", "item", id, "owner", identity.UserID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := Identity(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.OwnerID != identity.UserID {
		jsonError(w, http.StatusForbidden, "not authorized to delete this item")
		return
	}

	if _, err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("item deleted", "item", id, "owner", identity.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item removed"})
}

// ListMine handles GET /api/items/mine.
func (h *ItemsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := Identity(r.Context())

	items, err := store.ListItemsByOwner(r.Context(), h.DB, identity.UserID)
	if err != nil {
		slog.Error("failed to list own items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}
