package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, name, name_en, description, description_en, price, price_en, details, details_en, images, tags, tags_en, featured, active, views, likes, created_at, updated_at`

const (
	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM product
		ORDER BY created_at DESC
	`
	listActiveProductsQuery = `
		SELECT ` + productColumns + `
		FROM product
		WHERE active = TRUE
		ORDER BY created_at DESC
	`
	listProductsByIDsQuery = `
		SELECT ` + productColumns + `
		FROM product
		WHERE id = ANY($1::text[])
		ORDER BY created_at DESC
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM product
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO product (id, name, name_en, description, description_en, price, price_en, details, details_en, images, tags, tags_en, featured, active, views, likes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`
	updateProductQuery = `
		UPDATE product
		SET name = $1,
			name_en = $2,
			description = $3,
			description_en = $4,
			price = $5,
			price_en = $6,
			details = $7,
			details_en = $8,
			images = $9,
			tags = $10,
			tags_en = $11,
			featured = $12,
			active = $13,
			updated_at = $14
		WHERE id = $15
	`
	deleteProductQuery = `DELETE FROM product WHERE id = $1`
	toggleActiveQuery  = `
		UPDATE product
		SET active = NOT active, updated_at = $2
		WHERE id = $1
		RETURNING ` + productColumns + `
	`
	incrementViewsQuery = `UPDATE product SET views = views + 1 WHERE id = $1 RETURNING views`
	addLikesQuery       = `UPDATE product SET likes = GREATEST(likes + $2, 0) WHERE id = $1 RETURNING likes`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(adminMode bool) ([]Product, error) {
	q := listActiveProductsQuery
	if adminMode {
		q = listProductsQuery
	}
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	p.normalizeLists()
	_, err := r.db.Exec(
		insertProductQuery,
		p.ID,
		p.Name,
		p.NameEn,
		p.Description,
		p.DescriptionEn,
		p.Price,
		p.PriceEn,
		EncodeStringList(p.Details),
		EncodeStringList(p.DetailsEn),
		EncodeStringList(p.Images),
		EncodeStringList(p.Tags),
		EncodeStringList(p.TagsEn),
		p.Featured,
		p.Active,
		p.Views,
		p.Likes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update reads the current row, applies the merge-patch and writes the merged
// row back. Concurrent edits race last-write-wins; the one flag admins actually
// contend on goes through ToggleActive instead.
func (r *PostgresRepository) Update(id string, patch Patch, updatedAt string) (Product, error) {
	current, err := r.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	patch.Apply(&current)
	current.normalizeLists()
	current.UpdatedAt = updatedAt

	result, err := r.db.Exec(
		updateProductQuery,
		current.Name,
		current.NameEn,
		current.Description,
		current.DescriptionEn,
		current.Price,
		current.PriceEn,
		EncodeStringList(current.Details),
		EncodeStringList(current.DetailsEn),
		EncodeStringList(current.Images),
		EncodeStringList(current.Tags),
		EncodeStringList(current.TagsEn),
		current.Featured,
		current.Active,
		current.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return current, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ToggleActive(id string, updatedAt string) (Product, error) {
	row := r.db.QueryRow(toggleActiveQuery, id, updatedAt)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) IncrementViews(id string) (int, error) {
	var views int
	if err := r.db.QueryRow(incrementViewsQuery, id).Scan(&views); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

func (r *PostgresRepository) AddLikes(id string, delta int) (int, error) {
	var likes int
	if err := r.db.QueryRow(addLikesQuery, id, delta).Scan(&likes); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

// Reset deletes all products and inserts the provided list in a single
// transaction. Used by the seed endpoint only.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM product`); err != nil {
		return err
	}

	for _, p := range products {
		p.normalizeLists()
		if _, err := tx.Exec(insertProductQuery,
			p.ID,
			p.Name,
			p.NameEn,
			p.Description,
			p.DescriptionEn,
			p.Price,
			p.PriceEn,
			EncodeStringList(p.Details),
			EncodeStringList(p.DetailsEn),
			EncodeStringList(p.Images),
			EncodeStringList(p.Tags),
			EncodeStringList(p.TagsEn),
			p.Featured,
			p.Active,
			p.Views,
			p.Likes,
			p.CreatedAt,
			p.UpdatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		details   sql.NullString
		detailsEn sql.NullString
		images    sql.NullString
		tags      sql.NullString
		tagsEn    sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.NameEn,
		&p.Description,
		&p.DescriptionEn,
		&p.Price,
		&p.PriceEn,
		&details,
		&detailsEn,
		&images,
		&tags,
		&tagsEn,
		&p.Featured,
		&p.Active,
		&p.Views,
		&p.Likes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	// tolerant decode: NULL columns and historic shapes all normalize here
	p.Details = DecodeStringList(details.String)
	p.DetailsEn = DecodeStringList(detailsEn.String)
	p.Images = DecodeStringList(images.String)
	p.Tags = DecodeStringList(tags.String)
	p.TagsEn = DecodeStringList(tagsEn.String)
	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}
	return p, nil
}
