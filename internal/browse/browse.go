// Package browse implements the storefront browsing experience: category and
// search filtering, fixed-size pagination, featured-product ranking, and the
// cart counter. View derivation is a pure function of its inputs so the
// rendering layer never sees stale intermediate state.
package browse

import (
	"sort"
	"strings"

	"storefront/internal/models"
)

const (
	// PageSize is the fixed number of products per page.
	PageSize = 8
	// AllCategories is the filter value that disables category filtering.
	AllCategories = "all"
	// FeaturedCount is the number of top-rated products shown as featured.
	FeaturedCount = 4
)

// View is one renderable page of the catalog.
type View struct {
	Items      []models.Product
	Page       int
	TotalPages int
}

// Filter retains the products matching the category (exact, case-sensitive)
// and the search string (case-insensitive substring of name or description).
// "all" and "" disable the respective step.
func Filter(products []models.Product, category, search string) []models.Product {
	filtered := products
	if category != AllCategories {
		kept := make([]models.Product, 0, len(filtered))
		for _, p := range filtered {
			if p.Category == category {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}
	if search != "" {
		needle := strings.ToLower(search)
		kept := make([]models.Product, 0, len(filtered))
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}
	return filtered
}

// DeriveView filters the full product list and slices out the requested
// 1-indexed page. A page past the end yields an empty item list.
func DeriveView(products []models.Product, category, search string, page int) View {
	filtered := Filter(products, category, search)

	totalPages := (len(filtered) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return View{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}

// Featured returns the top products by rating, highest first. The input is
// not modified.
func Featured(products []models.Product) []models.Product {
	sorted := append([]models.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating.Rate > sorted[j].Rating.Rate
	})
	if len(sorted) > FeaturedCount {
		sorted = sorted[:FeaturedCount]
	}
	return sorted
}

// CategoryOptions returns "all" followed by the distinct categories in
// first-seen order.
func CategoryOptions(products []models.Product) []string {
	options := []string{AllCategories}
	seen := make(map[string]struct{})
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			options = append(options, p.Category)
		}
	}
	return options
}

// Lister fetches the full product list. *client.Client satisfies it.
type Lister interface {
	ListProducts() ([]models.Product, error)
}

// Browser holds the browsing state: the product list fetched once on load,
// the active filter, search string and page, and the cart counter. Featured
// products are recomputed only when the list is (re)loaded.
type Browser struct {
	api       Lister
	products  []models.Product
	featured  []models.Product
	category  string
	search    string
	page      int
	cartCount int
}

// NewBrowser creates a Browser with the default filter state: category
// "all", empty search, page 1.
func NewBrowser(api Lister) *Browser {
	return &Browser{
		api:      api,
		category: AllCategories,
		page:     1,
	}
}

// Load fetches the full product list and recomputes the featured ranking.
func (b *Browser) Load() error {
	products, err := b.api.ListProducts()
	if err != nil {
		return err
	}
	b.products = products
	b.featured = Featured(products)
	return nil
}

// Reload is a full refresh, used after a product is created elsewhere.
func (b *Browser) Reload() error {
	return b.Load()
}

// SetCategory changes the category filter and resets to the first page.
func (b *Browser) SetCategory(category string) {
	b.category = category
	b.page = 1
}

// SetSearch changes the search string and resets to the first page.
func (b *Browser) SetSearch(search string) {
	b.search = search
	b.page = 1
}

// SetPage moves to the given page without touching filter state.
func (b *Browser) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	b.page = page
}

// View derives the currently visible page.
func (b *Browser) View() View {
	return DeriveView(b.products, b.category, b.search, b.page)
}

// Featured returns the ranking computed at the last (re)load.
func (b *Browser) Featured() []models.Product {
	return b.featured
}

// CategoryOptions returns the selectable category filters.
func (b *Browser) CategoryOptions() []string {
	return CategoryOptions(b.products)
}

// AddToCart bumps the cart counter. The cart tracks a count only, not
// contents, and does not survive the Browser.
func (b *Browser) AddToCart() {
	b.cartCount++
}

// CartCount returns the number of add-to-cart actions so far.
func (b *Browser) CartCount() int {
	return b.cartCount
}
