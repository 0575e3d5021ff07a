// Package forms implements the seller-side product form: a declarative
// per-field rule table applied uniformly on blur and on submit, replacing
// name-by-name dispatch in the handlers.
package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"storefront/internal/models"
)

// Mode selects the rule variant. Create and edit share every rule except the
// quantity lower bound (1 on create, 0 on edit) and category, which is only
// editable at creation.
type Mode int

const (
	Create Mode = iota
	Edit
)

// Categories is the fixed set a product may be created under. The store
// itself accepts any string; this set binds only the form.
var Categories = []string{"men's clothing", "jewelery", "electronics", "women's clothing"}

// imageExtensions are the suffixes the image heuristic recognizes.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// fieldSpec describes one form field: an optional clamp applied as the value
// is typed, and a validator returning an error message or "".
type fieldSpec struct {
	clamp    func(raw string) string
	validate func(raw string, mode Mode) string
}

// fieldSpecs is the rule table. Every field is iterated uniformly; there is
// no per-field dispatch anywhere else.
var fieldSpecs = map[string]fieldSpec{
	"name": {
		validate: func(raw string, _ Mode) string {
			trimmed := strings.TrimSpace(raw)
			switch {
			case trimmed == "":
				return "Product name is required"
			case utf8.RuneCountInString(trimmed) < 2:
				return "Product name must be at least 2 characters long"
			case utf8.RuneCountInString(trimmed) > 100:
				return "Product name must be less than 100 characters"
			}
			return ""
		},
	},
	"price": {
		validate: func(raw string, _ Mode) string {
			if strings.TrimSpace(raw) == "" {
				return "Price is required"
			}
			price, err := strconv.ParseFloat(raw, 64)
			switch {
			case err != nil, price <= 0:
				return "Price must be a positive number"
			case price > 999999:
				return "Price cannot exceed $999,999"
			}
			return ""
		},
	},
	"description": {
		validate: func(raw string, _ Mode) string {
			trimmed := strings.TrimSpace(raw)
			switch {
			case trimmed == "":
				return "Description is required"
			case utf8.RuneCountInString(trimmed) < 10:
				return "Description must be at least 10 characters long"
			case utf8.RuneCountInString(trimmed) > 1000:
				return "Description must be less than 1000 characters"
			}
			return ""
		},
	},
	"category": {
		validate: func(raw string, mode Mode) string {
			if mode == Edit {
				// Immutable after creation; the edit form renders it disabled.
				return ""
			}
			if strings.TrimSpace(raw) == "" {
				return "Category is required"
			}
			for _, c := range Categories {
				if raw == c {
					return ""
				}
			}
			return "Please select a valid category"
		},
	},
	"image": {
		validate: func(raw string, _ Mode) string {
			if strings.TrimSpace(raw) == "" {
				return "Image URL is required"
			}
			u, err := url.Parse(raw)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return "Please provide a valid URL"
			}
			if !looksLikeImage(raw) {
				return "Please provide a valid image URL"
			}
			return ""
		},
	},
	"quantity": {
		validate: func(raw string, mode Mode) string {
			if strings.TrimSpace(raw) == "" {
				return "Quantity is required"
			}
			min := 1
			if mode == Edit {
				min = 0
			}
			quantity, err := strconv.Atoi(raw)
			switch {
			case err != nil, quantity < min:
				return fmt.Sprintf("Quantity must be %d or greater", min)
			case quantity > 10000:
				return "Quantity cannot exceed 10,000"
			}
			return ""
		},
	},
	"rate": {
		clamp: clampRate,
		validate: func(raw string, _ Mode) string {
			if strings.TrimSpace(raw) == "" {
				return "Rating is required"
			}
			rate, err := strconv.ParseFloat(raw, 64)
			if err != nil || rate < 0 || rate > 5 {
				return "Rating must be between 0 and 5"
			}
			return ""
		},
	},
	"count": {
		validate: func(raw string, _ Mode) string {
			if strings.TrimSpace(raw) == "" {
				return "Rating count is required"
			}
			count, err := strconv.Atoi(raw)
			switch {
			case err != nil, count < 0:
				return "Rating count must be 0 or greater"
			case count > 1000000:
				return "Rating count cannot exceed 1,000,000"
			}
			return ""
		},
	},
}

// looksLikeImage applies the image heuristic: a known file extension
// anywhere in the URL, or "placeholder"/"image" as a fallback.
func looksLikeImage(raw string) bool {
	lower := strings.ToLower(raw)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return strings.Contains(raw, "placeholder") || strings.Contains(raw, "image")
}

// clampRate pulls a numeric rating back into [0, 5] as the user types.
// Non-numeric input passes through for the validator to reject.
func clampRate(raw string) string {
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if rate > 5 {
		return "5"
	}
	if rate < 0 {
		return "0"
	}
	return raw
}

// ProductForm holds the raw field values and outstanding errors of one
// add/edit product form.
type ProductForm struct {
	mode   Mode
	values map[string]string
	errors map[string]string
}

// NewProductForm creates a form in the given mode. A create form starts
// with the same defaults the add-product page shows.
func NewProductForm(mode Mode) *ProductForm {
	f := &ProductForm{
		mode:   mode,
		values: make(map[string]string),
		errors: make(map[string]string),
	}
	if mode == Create {
		f.values["category"] = Categories[0]
		f.values["quantity"] = "1"
		f.values["rate"] = "0"
		f.values["count"] = "0"
	}
	return f
}

// NewEditForm creates an edit form pre-filled from an existing product.
func NewEditForm(p models.Product) *ProductForm {
	f := NewProductForm(Edit)
	f.values["name"] = p.Name
	f.values["price"] = strconv.FormatFloat(p.Price, 'f', -1, 64)
	f.values["quantity"] = strconv.Itoa(p.Quantity)
	f.values["description"] = p.Description
	f.values["image"] = p.Image
	f.values["category"] = p.Category
	f.values["rate"] = strconv.FormatFloat(p.Rating.Rate, 'f', -1, 64)
	f.values["count"] = strconv.Itoa(p.Rating.Count)
	return f
}

// Set records a new raw value, applying the field's clamp and clearing any
// outstanding error for it, mirroring typing in the form. Setting category
// on an edit form is ignored: category cannot change after creation.
func (f *ProductForm) Set(field, raw string) {
	spec, ok := fieldSpecs[field]
	if !ok {
		return
	}
	if field == "category" && f.mode == Edit {
		return
	}
	if spec.clamp != nil {
		raw = spec.clamp(raw)
	}
	f.values[field] = raw
	delete(f.errors, field)
}

// Value returns the current raw value of a field.
func (f *ProductForm) Value(field string) string {
	return f.values[field]
}

// Blur validates a single field, as leaving the input does, and returns the
// error message ("" when valid).
func (f *ProductForm) Blur(field string) string {
	spec, ok := fieldSpecs[field]
	if !ok {
		return ""
	}
	msg := spec.validate(f.values[field], f.mode)
	if msg != "" {
		f.errors[field] = msg
	}
	return msg
}

// ValidateAll runs every field's rule, records the failures, and reports
// whether the form may be submitted.
func (f *ProductForm) ValidateAll() bool {
	f.errors = make(map[string]string)
	for field, spec := range fieldSpecs {
		if msg := spec.validate(f.values[field], f.mode); msg != "" {
			f.errors[field] = msg
		}
	}
	return len(f.errors) == 0
}

// Error returns the outstanding error for a field, if any.
func (f *ProductForm) Error(field string) string {
	return f.errors[field]
}

// Errors returns all outstanding errors keyed by field.
func (f *ProductForm) Errors() map[string]string {
	return f.errors
}

// Product builds the product this form describes for the given owner.
// ValidateAll must have passed; values are parsed without re-checking.
func (f *ProductForm) Product(userID string) models.Product {
	price, _ := strconv.ParseFloat(f.values["price"], 64)
	quantity, _ := strconv.Atoi(f.values["quantity"])
	rate, _ := strconv.ParseFloat(f.values["rate"], 64)
	count, _ := strconv.Atoi(f.values["count"])

	return models.Product{
		Name:        strings.TrimSpace(f.values["name"]),
		Price:       price,
		Quantity:    quantity,
		Description: strings.TrimSpace(f.values["description"]),
		Image:       f.values["image"],
		Category:    f.values["category"],
		Rating:      models.Rating{Rate: rate, Count: count},
		UserID:      userID,
	}
}
