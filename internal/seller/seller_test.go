package seller_test

import (
	"fmt"
	"testing"

	"storefront/internal/forms"
	"storefront/internal/models"
	"storefront/internal/seller"
	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
)

// fakeAPI is an in-memory stand-in for the catalog API.
type fakeAPI struct {
	products    map[string]models.Product
	listCalls   int
	deleteCalls int
}

func newFakeAPI(products ...models.Product) *fakeAPI {
	api := &fakeAPI{products: make(map[string]models.Product)}
	for _, p := range products {
		api.products[p.ID] = p
	}
	return api
}

func (f *fakeAPI) GetProduct(id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: not found", id)
	}
	return &p, nil
}

func (f *fakeAPI) CreateProduct(product models.Product) (*models.Product, error) {
	product.ID = fmt.Sprintf("p%d", len(f.products)+1)
	f.products[product.ID] = product
	return &product, nil
}

func (f *fakeAPI) UpdateProduct(id, callerID string, update services.ProductUpdate) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: not found", id)
	}
	if callerID != "" && p.UserID != callerID {
		return nil, fmt.Errorf("product %s: permission denied", id)
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Quantity != nil {
		p.Quantity = *update.Quantity
	}
	f.products[id] = p
	return &p, nil
}

func (f *fakeAPI) DeleteProduct(id, callerID string) error {
	f.deleteCalls++
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product %s: not found", id)
	}
	delete(f.products, id)
	return nil
}

func (f *fakeAPI) ListByUser(userID string) ([]models.Product, error) {
	f.listCalls++
	var owned []models.Product
	for _, p := range f.products {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

func signedInSession(t *testing.T, userID string) *session.Session {
	t.Helper()
	sess := session.New(session.NewMemoryStore())
	assert.NoError(t, sess.SignIn(&models.User{ID: userID, Username: "alice", Email: "alice@example.com"}))
	return sess
}

func validCreateForm() *forms.ProductForm {
	f := forms.NewProductForm(forms.Create)
	f.Set("name", "Handmade Ring")
	f.Set("price", "42.50")
	f.Set("quantity", "3")
	f.Set("description", "A handmade silver ring with fine engraving.")
	f.Set("image", "https://example.com/ring.jpg")
	f.Set("category", "jewelery")
	f.Set("rate", "4.2")
	f.Set("count", "11")
	return f
}

func TestLoadOwnRequiresSession(t *testing.T) {
	api := newFakeAPI()
	sess := session.New(session.NewMemoryStore())
	m := seller.NewManager(api, sess)

	_, err := m.LoadOwn()
	assert.ErrorIs(t, err, session.ErrNotSignedIn)
	assert.Zero(t, api.listCalls)
}

func TestLoadOwnListsOnlyOwnProducts(t *testing.T) {
	api := newFakeAPI(
		models.Product{ID: "p1", Name: "Mine", UserID: "u1"},
		models.Product{ID: "p2", Name: "Theirs", UserID: "u2"},
		models.Product{ID: "p3", Name: "Also mine", UserID: "u1"},
	)
	m := seller.NewManager(api, signedInSession(t, "u1"))

	products, err := m.LoadOwn()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "u1", p.UserID)
	}
}

func TestCreateAttachesSignedInUser(t *testing.T) {
	api := newFakeAPI()
	m := seller.NewManager(api, signedInSession(t, "u1"))

	created, err := m.Create(validCreateForm())
	assert.NoError(t, err)
	assert.Equal(t, "u1", created.UserID)
	assert.NotEmpty(t, created.ID)
}

func TestCreateBlockedByValidation(t *testing.T) {
	api := newFakeAPI()
	m := seller.NewManager(api, signedInSession(t, "u1"))

	form := validCreateForm()
	form.Set("price", "-1")

	created, err := m.Create(form)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, seller.ErrInvalidForm)
	assert.Empty(t, api.products, "nothing is submitted while a field has an error")
}

func TestBeginEditForeignProductShowsPermissionError(t *testing.T) {
	api := newFakeAPI(models.Product{ID: "p1", Name: "Theirs", UserID: "u2"})
	m := seller.NewManager(api, signedInSession(t, "u1"))

	form, err := m.BeginEdit("p1")
	assert.Nil(t, form, "no editable form for a foreign product")
	assert.ErrorIs(t, err, seller.ErrPermission)
}

func TestEditRoundTrip(t *testing.T) {
	api := newFakeAPI(models.Product{
		ID: "p1", Name: "Old Name", Price: 10, Quantity: 5,
		Description: "A perfectly adequate description.",
		Image:       "https://example.com/old.jpg",
		Category:    "electronics", UserID: "u1",
		Rating: models.Rating{Rate: 3.0, Count: 4},
	})
	m := seller.NewManager(api, signedInSession(t, "u1"))
	_, err := m.LoadOwn()
	assert.NoError(t, err)

	form, err := m.BeginEdit("p1")
	assert.NoError(t, err)
	assert.Equal(t, "Old Name", form.Value("name"))

	form.Set("name", "New Name")
	form.Set("quantity", "0") // allowed on edit

	updated, err := m.SubmitEdit("p1", form)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 0, updated.Quantity)

	// The local list reflects the update
	assert.Equal(t, "New Name", m.Products()[0].Name)
}

func TestSubmitEditRevalidates(t *testing.T) {
	api := newFakeAPI(models.Product{
		ID: "p1", Name: "Old Name", Price: 10, Quantity: 5,
		Description: "A perfectly adequate description.",
		Image:       "https://example.com/old.jpg",
		Category:    "electronics", UserID: "u1",
	})
	m := seller.NewManager(api, signedInSession(t, "u1"))

	form, err := m.BeginEdit("p1")
	assert.NoError(t, err)
	form.Set("description", "too short")

	updated, err := m.SubmitEdit("p1", form)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, seller.ErrInvalidForm)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := newFakeAPI(models.Product{ID: "p1", Name: "Mine", UserID: "u1"})
	m := seller.NewManager(api, signedInSession(t, "u1"))
	_, err := m.LoadOwn()
	assert.NoError(t, err)

	// Declined confirmation is a no-op, not an error
	err = m.Delete("p1", func(models.Product) bool { return false })
	assert.NoError(t, err)
	assert.Zero(t, api.deleteCalls)
	assert.Len(t, m.Products(), 1)

	// Confirmed deletion removes the item from local state without refetching
	var confirmed models.Product
	err = m.Delete("p1", func(p models.Product) bool {
		confirmed = p
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, "Mine", confirmed.Name)
	assert.Empty(t, m.Products())
	assert.Equal(t, 1, api.listCalls, "the list is not refetched after delete")
}
