package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{
	"id", "name", "description", "category", "base_price", "images", "customizable",
	"lead_time", "dietary", "sizes", "flavors", "featured", "popular", "rating",
}

func newPoolMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresRepository_Product(t *testing.T) {
	ctx := context.Background()
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	rows := pgxmock.NewRows(productRowColumns).AddRow(
		2, "Chocolate Celebration Cake", "Rich chocolate", "Birthday Cakes", "45.00",
		[]string{"a.jpg"}, true, 2, []string{"Vegan Available"},
		[]byte(`[{"name":"6 inch","price":45}]`), []string{"Chocolate"}, true, true, 4.8,
	)
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id=\$1`).WithArgs(2).WillReturnRows(rows)

	p, err := repo.Product(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Celebration Cake", p.Name)
	assert.Equal(t, "45", p.BasePrice.String())
	assert.Equal(t, "a.jpg", p.PrimaryImage())
	require.Len(t, p.Sizes, 1)
	assert.Equal(t, "6 inch", p.Sizes[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ProductMissing(t *testing.T) {
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id=\$1`).WithArgs(99).WillReturnError(pgx.ErrNoRows)

	_, err := repo.Product(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ProductsByCategory(t *testing.T) {
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	rows := pgxmock.NewRows(productRowColumns).
		AddRow(1, "Classic", "d", "Wedding Cakes", "350", []string{}, true, 14, []string{}, []byte(`[]`), []string{}, true, false, 4.9).
		AddRow(8, "Rustic", "d", "Wedding Cakes", "295", []string{}, true, 14, []string{}, []byte(nil), []string{}, true, false, 4.6)
	mock.ExpectQuery(`FROM products WHERE lower\(category\)=lower\(\$1\)`).WithArgs("wedding cakes").WillReturnRows(rows)

	got, err := repo.ProductsByCategory(context.Background(), "wedding cakes")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8}, productIDs(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_QueryError(t *testing.T) {
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM products WHERE featured`).WillReturnError(boom)

	_, err := repo.FeaturedProducts(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPostgresRepository_GalleryAndTestimonials(t *testing.T) {
	ctx := context.Background()
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	mock.ExpectQuery(`FROM gallery_items WHERE id=\$1`).WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "category", "image", "description"}).
			AddRow(3, "Cupcake Tower", "Cupcakes", "img", "desc"))
	mock.ExpectQuery(`FROM testimonials WHERE featured`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "body", "rating", "occasion", "featured"}).
			AddRow(1, "Maria G.", "Stunning", 5, "Wedding", true))

	item, err := repo.GalleryItem(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cupcake Tower", item.Title)

	featured, err := repo.FeaturedTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Stunning", featured[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Seed(t *testing.T) {
	mock := newPoolMock(t)
	repo := NewPostgresRepository(mock)

	data, err := LoadMockData()
	require.NoError(t, err)

	for range data.Products {
		mock.ExpectExec(`INSERT INTO products`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	for range data.Gallery {
		mock.ExpectExec(`INSERT INTO gallery_items`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	for range data.Testimonials {
		mock.ExpectExec(`INSERT INTO testimonials`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, repo.Seed(context.Background(), data))
	assert.NoError(t, mock.ExpectationsWereMet())
}
