package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

type fakeProductStore struct {
	products   map[int64]*models.Product
	nextID     int64
	lastFilter models.ProductFilter
	lastUpdate models.ProductUpdate
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]*models.Product{}, nextID: 1}
}

func (f *fakeProductStore) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	f.lastFilter = filter
	var all []models.Product
	for _, p := range f.products {
		all = append(all, *p)
	}
	total := len(all)
	offset := (filter.Page - 1) * filter.PageSize
	if offset > total {
		offset = total
	}
	end := offset + filter.PageSize
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Product not found")
}

func (f *fakeProductStore) Create(ctx context.Context, product *models.Product) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *product
	stored.ID = id
	f.products[id] = &stored
	return id, nil
}

func (f *fakeProductStore) Update(ctx context.Context, id int64, upd models.ProductUpdate) error {
	f.lastUpdate = upd
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func newTestProductService() (*ProductService, *fakeProductStore) {
	store := newFakeProductStore()
	return NewProductService(store, zerolog.Nop()), store
}

func seedProducts(store *fakeProductStore, n int) {
	for i := 0; i < n; i++ {
		id := store.nextID
		store.nextID++
		store.products[id] = &models.Product{ID: id, Name: "p", Price: float64(i)}
	}
}

func TestListNormalizesPagination(t *testing.T) {
	svc, store := newTestProductService()

	_, meta, err := svc.List(context.Background(), models.ProductFilter{Page: 0, PageSize: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, store.lastFilter.Page)
	assert.Equal(t, defaultPageSize, store.lastFilter.PageSize)
	assert.Equal(t, 1, meta.CurrentPage)
}

func TestListPaginationMeta(t *testing.T) {
	svc, store := newTestProductService()
	seedProducts(store, 12)

	items, meta, err := svc.List(context.Background(), models.ProductFilter{Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 5, meta.PageSize)
	assert.Equal(t, 12, meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestListLastPageMeta(t *testing.T) {
	svc, store := newTestProductService()
	seedProducts(store, 12)

	items, meta, err := svc.List(context.Background(), models.ProductFilter{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.False(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
	assert.GreaterOrEqual(t, meta.TotalItems, len(items))
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ProductInput
		message string
	}{
		{"missing name", models.ProductInput{Price: 1}, "Product name is required"},
		{"negative price", models.ProductInput{Name: "x", Price: -1}, "Price cannot be negative"},
		{"negative stock", models.ProductInput{Name: "x", Stock: -1}, "Stock cannot be negative"},
		{"discount too high", models.ProductInput{Name: "x", DiscountPercentage: 101}, "Discount percentage must be between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestProductService()

			_, err := svc.Create(context.Background(), 1, tt.input)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.message, apperr.ClientMessage(err))
			assert.Empty(t, store.products)
		})
	}
}

func TestCreateSetsSellerAndInitialRating(t *testing.T) {
	svc, store := newTestProductService()

	id, err := svc.Create(context.Background(), 7, models.ProductInput{
		Name:  "running shoe",
		Price: 59.99,
		Stock: 3,
	})
	require.NoError(t, err)

	created := store.products[id]
	require.NotNil(t, created)
	assert.Equal(t, int64(7), created.SellerID)
	assert.Zero(t, created.Rating)
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestProductService()

	empty := ""
	negative := -1.0
	err := svc.Update(context.Background(), 1, models.ProductUpdate{Name: &empty})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.Update(context.Background(), 1, models.ProductUpdate{Price: &negative})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdatePassesAllowListedFields(t *testing.T) {
	svc, store := newTestProductService()

	price := 19.99
	err := svc.Update(context.Background(), 1, models.ProductUpdate{Price: &price})
	require.NoError(t, err)
	require.NotNil(t, store.lastUpdate.Price)
	assert.Equal(t, price, *store.lastUpdate.Price)
	assert.Nil(t, store.lastUpdate.Name)
}
