package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// itemFormData is the data for the shared create/edit form template.
type itemFormData struct {
	PageData
	Form       model.ItemFields
	Errors     map[string]string
	Categories []string
	Action     string
	Editing    bool
}

// ListingPage handles GET /. The full item list is rendered once; filtering
// by status, category, and search term happens client-side in app.js.
func (s *Server) ListingPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, store.ItemFilter{})
	if err != nil {
		slog.Error("failed to list items", "error", err)
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items      []model.Item
		Categories []string
	}{
		PageData:   PageData{Title: "Lost & Found", User: claims},
		Items:      items,
		Categories: model.Categories(),
	})
}

// ItemDetailPage handles GET /items/{id}. Owners see edit, resolve, and
// delete actions; everyone else only gets a back link.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, err := store.GetItem(r.Context(), s.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item    *model.Item
		IsOwner bool
	}{
		PageData: PageData{Title: item.Title, User: claims},
		Item:     item,
		IsOwner:  claims != nil && claims.UserID == item.OwnerID,
	})
}

// ItemNewPage handles GET /items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData:   PageData{Title: "Post an item", User: claims},
		Form:       model.ItemFields{Status: model.StatusLost},
		Categories: model.Categories(),
		Action:     "/items/new",
	})
}

// ItemNewSubmit handles POST /items/new.
func (s *Server) ItemNewSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	form := itemFieldsFromForm(r)

	if errs := model.ValidateNewItem(form); len(errs) > 0 {
		s.Templates.Render(w, "item_form.html", &itemFormData{
			PageData:   PageData{Title: "Post an item", User: claims},
			Form:       form,
			Errors:     fieldErrorMap(errs),
			Categories: model.Categories(),
			Action:     "/items/new",
		})
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, &model.Item{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Status:      form.Status,
		Location:    form.Location,
		Date:        form.Date,
		ContactInfo: form.ContactInfo,
		ImageURL:    form.ImageURL,
		OwnerID:     claims.UserID,
		OwnerName:   claims.Name,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err)
		http.Error(w, "failed to create item", http.StatusInternalServerError)
		return
	}

	slog.Info("item posted", "item", item.ID, "owner", claims.UserID)
	http.Redirect(w, r, "/items/"+item.ID, http.StatusSeeOther)
}

// ItemEditPage handles GET /items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if item.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	s.Templates.Render(w, "item_form.html", &itemFormData{
		PageData: PageData{Title: "Edit item", User: claims},
		Form: model.ItemFields{
			Title:       item.Title,
			Description: item.Description,
			Category:    item.Category,
			Status:      item.Status,
			Location:    item.Location,
			Date:        item.Date,
			ContactInfo: item.ContactInfo,
			ImageURL:    item.ImageURL,
			Resolved:    item.Resolved,
		},
		Categories: model.Categories(),
		Action:     "/items/" + id + "/edit",
		Editing:    true,
	})
}

// ItemEditSubmit handles POST /items/{id}/edit. The form carries every
// mutable field, so the full-overwrite update loses nothing here.
func (s *Server) ItemEditSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if item.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	form := itemFieldsFromForm(r)
	form.Resolved = r.FormValue("resolved") == "on"

	if _, err := store.UpdateItem(r.Context(), s.DB, id, form); err != nil {
		slog.Error("failed to update item", "error", err)
		http.Error(w, "failed to update item", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "item", id, "owner", claims.UserID)
	http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
}

// ItemResolveSubmit handles POST /items/{id}/resolve. Resolving re-sends the
// whole current record with resolved set, since updates replace every field.
func (s *Server) ItemResolveSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if item.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	_, err = store.UpdateItem(r.Context(), s.DB, id, model.ItemFields{
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Status:      item.Status,
		Location:    item.Location,
		Date:        item.Date,
		ContactInfo: item.ContactInfo,
		ImageURL:    item.ImageURL,
		Resolved:    true,
	})
	if err != nil {
		slog.Error("failed to resolve item", "error", err)
		http.Error(w, "failed to resolve item", http.StatusInternalServerError)
		return
	}

	slog.Info("item resolved", "item", id, "owner", claims.UserID)
	http.Redirect(w, r, "/items/"+id, http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if item.OwnerID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if _, err := store.DeleteItem(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete item", "error", err)
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		return
	}

	slog.Info("item deleted", "item", id, "owner", claims.UserID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// MinePage handles GET /mine.
func (s *Server) MinePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItemsByOwner(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list own items", "error", err)
	}

	s.Templates.Render(w, "mine.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My items", User: claims},
		Items:    items,
	})
}

func itemFieldsFromForm(r *http.Request) model.ItemFields {
	return model.ItemFields{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Status:      r.FormValue("status"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		ContactInfo: r.FormValue("contactInfo"),
		ImageURL:    r.FormValue("imageUrl"),
	}
}

func fieldErrorMap(errs []model.FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}
