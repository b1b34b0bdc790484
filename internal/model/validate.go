package model

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateNewItem checks the fields of a new item and returns one error per
// failed rule. Title, description, category, status, location, date and
// contact info are required; category and status must be one of the
// enumerated values. An empty result means the item is valid.
func ValidateNewItem(f ItemFields) []FieldError {
	var errs []FieldError

	if f.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if f.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
	}
	switch {
	case f.Category == "":
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	case !ValidCategory(f.Category):
		errs = append(errs, FieldError{Field: "category", Message: "Invalid category"})
	}
	switch {
	case f.Status == "":
		errs = append(errs, FieldError{Field: "status", Message: "Status is required"})
	case !ValidStatus(f.Status):
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
	}
	if f.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "Location is required"})
	}
	if f.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "Date is required"})
	}
	if f.ContactInfo == "" {
		errs = append(errs, FieldError{Field: "contactInfo", Message: "Contact information is required"})
	}

	return errs
}
