package model

import "time"

// Item is a lost or found report posted by a user.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	ContactInfo string    `json:"contactInfo"`
	ImageURL    string    `json:"imageUrl"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	Resolved    bool      `json:"resolved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ItemFields holds every owner-mutable field of an item. An update replaces
// all of them at once: fields the caller leaves empty are stored empty.
type ItemFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	ContactInfo string `json:"contactInfo"`
	ImageURL    string `json:"imageUrl"`
	Resolved    bool   `json:"resolved"`
}

// Item statuses.
const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// Item categories.
const (
	CategoryElectronics = "Electronics"
	CategoryDocuments   = "Documents"
	CategoryAccessories = "Accessories"
	CategoryClothing    = "Clothing"
	CategoryKeys        = "Keys"
	CategoryBags        = "Bags"
	CategoryOthers      = "Others"
)

// Categories lists all valid item categories, in display order.
func Categories() []string {
	return []string{
		CategoryElectronics,
		CategoryDocuments,
		CategoryAccessories,
		CategoryClothing,
		CategoryKeys,
		CategoryBags,
		CategoryOthers,
	}
}

// ValidCategory reports whether category is one of the enumerated categories.
func ValidCategory(category string) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// ValidStatus reports whether status is "lost" or "found".
func ValidStatus(status string) bool {
	return status == StatusLost || status == StatusFound
}
