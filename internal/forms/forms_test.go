package forms_test

import (
	"strings"
	"testing"

	"storefront/internal/forms"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
)

// fill sets every field of a form to a valid value.
func fill(f *forms.ProductForm) {
	f.Set("name", "Test Backpack")
	f.Set("price", "109.95")
	f.Set("quantity", "25")
	f.Set("description", "A sturdy pack for everyday use and walks.")
	f.Set("image", "https://example.com/backpack.jpg")
	f.Set("category", "men's clothing")
	f.Set("rate", "3.9")
	f.Set("count", "120")
}

func TestNameLengthBounds(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	f.Set("name", "A")
	assert.NotEmpty(t, f.Blur("name"), "1-char name is rejected")

	f.Set("name", "AB")
	assert.Empty(t, f.Blur("name"), "2-char name is accepted")

	f.Set("name", strings.Repeat("x", 100))
	assert.Empty(t, f.Blur("name"))

	f.Set("name", strings.Repeat("x", 101))
	assert.NotEmpty(t, f.Blur("name"), "101-char name is rejected")

	f.Set("name", "   ")
	assert.Equal(t, "Product name is required", f.Blur("name"))
}

func TestLengthBoundsCountCharactersNotBytes(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	// 60 characters but 120 bytes of UTF-8
	f.Set("name", strings.Repeat("é", 60))
	assert.Empty(t, f.Blur("name"))

	f.Set("name", strings.Repeat("é", 101))
	assert.NotEmpty(t, f.Blur("name"), "101-char name is rejected regardless of encoding")

	f.Set("description", strings.Repeat("é", 6))
	assert.NotEmpty(t, f.Blur("description"), "6-char description is too short even at 12 bytes")

	f.Set("description", strings.Repeat("é", 10))
	assert.Empty(t, f.Blur("description"))
}

func TestPriceBounds(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	cases := map[string]bool{
		"":          false,
		"0":         false,
		"-1":        false,
		"abc":       false,
		"0.01":      true,
		"999999":    true,
		"1000000":   false,
		"999999.01": false,
	}
	for raw, ok := range cases {
		f.Set("price", raw)
		msg := f.Blur("price")
		if ok {
			assert.Empty(t, msg, "price %q should pass", raw)
		} else {
			assert.NotEmpty(t, msg, "price %q should fail", raw)
		}
	}
}

func TestDescriptionLengthBounds(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	f.Set("description", "short")
	assert.NotEmpty(t, f.Blur("description"))

	f.Set("description", strings.Repeat("d", 10))
	assert.Empty(t, f.Blur("description"))

	f.Set("description", strings.Repeat("d", 1001))
	assert.NotEmpty(t, f.Blur("description"))
}

func TestQuantityBoundsDifferByMode(t *testing.T) {
	create := forms.NewProductForm(forms.Create)
	edit := forms.NewProductForm(forms.Edit)

	// Zero is rejected on create but accepted on edit
	create.Set("quantity", "0")
	assert.NotEmpty(t, create.Blur("quantity"))
	edit.Set("quantity", "0")
	assert.Empty(t, edit.Blur("quantity"))

	create.Set("quantity", "1")
	assert.Empty(t, create.Blur("quantity"))

	for _, f := range []*forms.ProductForm{create, edit} {
		f.Set("quantity", "10000")
		assert.Empty(t, f.Blur("quantity"))
		f.Set("quantity", "10001")
		assert.NotEmpty(t, f.Blur("quantity"))
		f.Set("quantity", "2.5")
		assert.NotEmpty(t, f.Blur("quantity"), "quantity must be an integer")
	}
}

func TestRateClampedWhileTyping(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	f.Set("rate", "7")
	assert.Equal(t, "5", f.Value("rate"))

	f.Set("rate", "-1")
	assert.Equal(t, "0", f.Value("rate"))

	f.Set("rate", "3.5")
	assert.Equal(t, "3.5", f.Value("rate"))
	assert.Empty(t, f.Blur("rate"))
}

func TestCountBounds(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	f.Set("count", "0")
	assert.Empty(t, f.Blur("count"))

	f.Set("count", "1000000")
	assert.Empty(t, f.Blur("count"))

	f.Set("count", "1000001")
	assert.NotEmpty(t, f.Blur("count"))

	f.Set("count", "-1")
	assert.NotEmpty(t, f.Blur("count"))
}

func TestImageHeuristic(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	cases := map[string]bool{
		"https://example.com/pic.jpg":            true,
		"https://example.com/pic.PNG":            true,
		"https://example.com/pic.webp?width=200": true,
		"https://via.placeholder.com/300":        true,
		"https://cdn.example.com/image/42":       true,
		"https://example.com/file.pdf":           false,
		"not a url":                              false,
		"/relative/pic.jpg":                      false,
		"":                                       false,
	}
	for raw, ok := range cases {
		f.Set("image", raw)
		msg := f.Blur("image")
		if ok {
			assert.Empty(t, msg, "image %q should pass", raw)
		} else {
			assert.NotEmpty(t, msg, "image %q should fail", raw)
		}
	}
}

func TestCategoryEnumOnCreateImmutableOnEdit(t *testing.T) {
	create := forms.NewProductForm(forms.Create)

	create.Set("category", "furniture")
	assert.NotEmpty(t, create.Blur("category"), "category outside the fixed set is rejected")

	for _, c := range forms.Categories {
		create.Set("category", c)
		assert.Empty(t, create.Blur("category"))
	}

	// On edit the category field is read-only
	edit := forms.NewEditForm(models.Product{Category: "jewelery"})
	edit.Set("category", "electronics")
	assert.Equal(t, "jewelery", edit.Value("category"))
	assert.Empty(t, edit.Blur("category"))
}

func TestValidateAllBlocksSubmission(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	// An empty form has several required fields outstanding
	assert.False(t, f.ValidateAll())
	assert.NotEmpty(t, f.Errors())

	fill(f)
	assert.True(t, f.ValidateAll())
	assert.Empty(t, f.Errors())

	// A single bad field blocks submission again
	f.Set("price", "-5")
	assert.False(t, f.ValidateAll())
	assert.NotEmpty(t, f.Error("price"))
}

func TestSetClearsOutstandingError(t *testing.T) {
	f := forms.NewProductForm(forms.Create)

	f.Set("name", "A")
	f.Blur("name")
	assert.NotEmpty(t, f.Error("name"))

	// Typing again clears the error until the next blur
	f.Set("name", "AB")
	assert.Empty(t, f.Error("name"))
}

func TestProductBuildsFromValidatedForm(t *testing.T) {
	f := forms.NewProductForm(forms.Create)
	fill(f)
	assert.True(t, f.ValidateAll())

	p := f.Product("u1")
	assert.Equal(t, "Test Backpack", p.Name)
	assert.Equal(t, 109.95, p.Price)
	assert.Equal(t, 25, p.Quantity)
	assert.Equal(t, "men's clothing", p.Category)
	assert.Equal(t, models.Rating{Rate: 3.9, Count: 120}, p.Rating)
	assert.Equal(t, "u1", p.UserID)
}

func TestEditFormPrefilled(t *testing.T) {
	product := models.Product{
		Name:        "Gold Ring",
		Price:       168,
		Quantity:    0,
		Description: "Satisfaction guaranteed, returns within 30 days.",
		Image:       "https://example.com/ring.png",
		Category:    "jewelery",
		Rating:      models.Rating{Rate: 4.1, Count: 70},
	}
	f := forms.NewEditForm(product)

	assert.Equal(t, "Gold Ring", f.Value("name"))
	assert.Equal(t, "168", f.Value("price"))
	assert.Equal(t, "0", f.Value("quantity"))
	assert.Equal(t, "4.1", f.Value("rate"))
	assert.True(t, f.ValidateAll(), "a stored product round-trips through the edit rules")
}
