package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const productColumns = `id, name, description, category, base_price::text, images, customizable,
	lead_time, dietary, sizes, flavors, featured, popular, rating`

const galleryColumns = `id, title, category, image, description`

const testimonialColumns = `id, name, body, rating, occasion, featured`

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Products(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *PostgresRepository) Product(ctx context.Context, id int) (Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE lower(category)=lower($1) ORDER BY id`, category)
}

func (r *PostgresRepository) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE strpos(lower(name), lower($1)) > 0
		   OR strpos(lower(description), lower($1)) > 0
		   OR strpos(lower(category), lower($1)) > 0
		ORDER BY id`, query)
}

func (r *PostgresRepository) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE featured ORDER BY id`)
}

func (r *PostgresRepository) PopularProducts(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE popular ORDER BY id`)
}

func (r *PostgresRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
		sizes []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &price, &p.Images, &p.Customizable,
		&p.LeadTime, &p.Dietary, &sizes, &p.Flavors, &p.Featured, &p.Popular, &p.Rating); err != nil {
		return Product{}, err
	}
	var err error
	if p.BasePrice, err = decimal.NewFromString(price); err != nil {
		return Product{}, fmt.Errorf("product %d base price: %w", p.ID, err)
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
			return Product{}, fmt.Errorf("product %d sizes: %w", p.ID, err)
		}
	}
	return p, nil
}

func (r *PostgresRepository) Gallery(ctx context.Context) ([]GalleryItem, error) {
	return r.queryGallery(ctx, `SELECT `+galleryColumns+` FROM gallery_items ORDER BY id`)
}

func (r *PostgresRepository) GalleryItem(ctx context.Context, id int) (GalleryItem, error) {
	var g GalleryItem
	row := r.pool.QueryRow(ctx, `SELECT `+galleryColumns+` FROM gallery_items WHERE id=$1`, id)
	if err := row.Scan(&g.ID, &g.Title, &g.Category, &g.Image, &g.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return GalleryItem{}, fmt.Errorf("gallery item %d: %w", id, ErrNotFound)
		}
		return GalleryItem{}, err
	}
	return g, nil
}

func (r *PostgresRepository) GalleryByCategory(ctx context.Context, category string) ([]GalleryItem, error) {
	return r.queryGallery(ctx, `SELECT `+galleryColumns+` FROM gallery_items WHERE lower(category)=lower($1) ORDER BY id`, category)
}

func (r *PostgresRepository) queryGallery(ctx context.Context, sql string, args ...any) ([]GalleryItem, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query gallery: %w", err)
	}
	defer rows.Close()

	out := []GalleryItem{}
	for rows.Next() {
		var g GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.Category, &g.Image, &g.Description); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Testimonials(ctx context.Context) ([]Testimonial, error) {
	return r.queryTestimonials(ctx, `SELECT `+testimonialColumns+` FROM testimonials ORDER BY id`)
}

func (r *PostgresRepository) FeaturedTestimonials(ctx context.Context) ([]Testimonial, error) {
	return r.queryTestimonials(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE featured ORDER BY id`)
}

func (r *PostgresRepository) queryTestimonials(ctx context.Context, sql string) ([]Testimonial, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query testimonials: %w", err)
	}
	defer rows.Close()

	out := []Testimonial{}
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Text, &t.Rating, &t.Occasion, &t.Featured); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Seed upserts data into the catalog tables.
func (r *PostgresRepository) Seed(ctx context.Context, data Data) error {
	for _, p := range data.Products {
		sizes, err := json.Marshal(p.Sizes)
		if err != nil {
			return fmt.Errorf("encode sizes for product %d: %w", p.ID, err)
		}
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO products (id, name, description, category, base_price, images, customizable,
				lead_time, dietary, sizes, flavors, featured, popular, rating)
			VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO NOTHING
		`, p.ID, p.Name, p.Description, p.Category, p.BasePrice.String(), p.Images, p.Customizable,
			p.LeadTime, p.Dietary, sizes, p.Flavors, p.Featured, p.Popular, p.Rating); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	for _, g := range data.Gallery {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO gallery_items (id, title, category, image, description)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, g.ID, g.Title, g.Category, g.Image, g.Description); err != nil {
			return fmt.Errorf("seed gallery item %d: %w", g.ID, err)
		}
	}
	for _, t := range data.Testimonials {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO testimonials (id, name, body, rating, occasion, featured)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, t.ID, t.Name, t.Text, t.Rating, t.Occasion, t.Featured); err != nil {
			return fmt.Errorf("seed testimonial %d: %w", t.ID, err)
		}
	}
	return nil
}
