package repositories_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func TestMockProductRepositoryListsInInsertionOrder(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	names := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		p := models.Product{
			Name:     fmt.Sprintf("Product %02d", i),
			Price:    10,
			Category: "electronics",
			UserID:   "user-1",
		}
		assert.NoError(t, repo.Create(&p))
		names = append(names, p.Name)
	}

	// Repeated listings must return the same order, so paginated views
	// stay stable across refetches.
	for attempt := 0; attempt < 3; attempt++ {
		products, err := repo.GetAll()
		assert.NoError(t, err)
		got := make([]string, 0, len(products))
		for _, p := range products {
			got = append(got, p.Name)
		}
		assert.Equal(t, names, got)
	}
}

func TestMockProductRepositoryOrderSurvivesDelete(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		p := models.Product{Name: fmt.Sprintf("Product %d", i), UserID: "user-1"}
		assert.NoError(t, repo.Create(&p))
		ids = append(ids, p.ID)
	}

	assert.NoError(t, repo.Delete(ids[2]))

	products, err := repo.GetAll()
	assert.NoError(t, err)
	got := make([]string, 0, len(products))
	for _, p := range products {
		got = append(got, p.ID)
	}
	assert.Equal(t, []string{ids[0], ids[1], ids[3], ids[4]}, got)

	byUser, err := repo.GetByUserID("user-1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 4)
	assert.Equal(t, ids[0], byUser[0].ID)
}
