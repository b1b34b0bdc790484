package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

// ItemFilter narrows a listing query. Zero-value fields are ignored; set
// fields combine with AND. Search matches items whose title or description
// contains the term as a case-insensitive substring.
type ItemFilter struct {
	Status   string
	Category string
	Search   string
}

const itemColumns = `id, title, description, category, status, location, date,
	contact_info, image_url, owner_id, owner_name, resolved, created_at`

// listItemsQuery builds the WHERE clause and arguments for a filtered
// listing. Returns an empty clause when no criteria are set.
func listItemsQuery(f ItemFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		clauses = append(clauses, "(instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0)")
		term := strings.ToLower(f.Search)
		args = append(args, term, term)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CreateItem inserts a new item with a store-assigned ID and creation time,
// and returns the stored record.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	item.ID = uuid.NewString()

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, title, description, category, status, location, date,
		                    contact_info, image_url, owner_id, owner_name, resolved)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Description, item.Category, item.Status, item.Location,
		item.Date, item.ContactInfo, item.ImageURL, item.OwnerID, item.OwnerName, item.Resolved,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID. Unknown and malformed IDs both return
// nil so callers cannot distinguish the two.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Title, &item.Description, &item.Category, &item.Status,
		&item.Location, &item.Date, &item.ContactInfo, &item.ImageURL,
		&item.OwnerID, &item.OwnerName, &item.Resolved, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items matching the filter, most recent first.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	where, args := listItemsQuery(filter)
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items`+where+` ORDER BY created_at DESC, rowid DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListItemsByOwner returns all items posted by the given user, most recent first.
func ListItemsByOwner(ctx context.Context, db *sql.DB, ownerID string) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE owner_id = ?
		 ORDER BY created_at DESC, rowid DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items by owner: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem replaces every mutable field of an item. This is a full
// overwrite: fields left empty in the request are stored empty. Returns nil
// if the item does not exist.
func UpdateItem(ctx context.Context, db *sql.DB, id string, fields model.ItemFields) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category = ?, status = ?,
		                  location = ?, date = ?, contact_info = ?, image_url = ?, resolved = ?
		 WHERE id = ?`,
		fields.Title, fields.Description, fields.Category, fields.Status,
		fields.Location, fields.Date, fields.ContactInfo, fields.ImageURL, fields.Resolved, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	return GetItem(ctx, db, id)
}

// DeleteItem permanently removes an item. Reports whether a record existed.
func DeleteItem(ctx context.Context, db *sql.DB, id string) (bool, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Category,
			&item.Status, &item.Location, &item.Date, &item.ContactInfo, &item.ImageURL,
			&item.OwnerID, &item.OwnerName, &item.Resolved, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
