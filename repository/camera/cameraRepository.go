package camerarepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"camrental/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Camera) error
	List(ctx context.Context) ([]model.Camera, error)
	ByID(ctx context.Context, id int64) (*model.Camera, error)
	Update(ctx context.Context, id int64, c *model.Camera) (*model.Camera, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const cameraCols = `id, name, brand, model, description, price, daily_rent_price,
       image_url, available, specifications, created_at, updated_at`

func (r *repo) Create(ctx context.Context, c *model.Camera) error {
	specs, err := specsJSON(c.Specifications)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO cameras (name, brand, model, description, price, daily_rent_price, image_url, specifications)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, available, created_at, updated_at`,
		c.Name, c.Brand, c.Model, c.Description, c.Price, c.DailyRentPrice, c.ImageURL, specs,
	).Scan(&c.ID, &c.Available, &c.CreatedAt, &c.UpdatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Camera, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cameraCols+`
		FROM cameras
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Camera
	for rows.Next() {
		c, err := scanCamera(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Camera, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cameraCols+`
		FROM cameras
		WHERE id = $1`, id)
	c, err := scanCamera(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// Update overwrites the mutable catalog fields only. Availability is owned
// by the rental lifecycle and is never written here.
func (r *repo) Update(ctx context.Context, id int64, c *model.Camera) (*model.Camera, error) {
	specs, err := specsJSON(c.Specifications)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE cameras
		SET name = $2,
		    brand = $3,
		    model = $4,
		    description = $5,
		    price = $6,
		    daily_rent_price = $7,
		    image_url = $8,
		    specifications = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+cameraCols,
		id, c.Name, c.Brand, c.Model, c.Description, c.Price, c.DailyRentPrice, c.ImageURL, specs)
	updated, err := scanCamera(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return updated, err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cameras WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCamera(row rowScanner) (*model.Camera, error) {
	var (
		c     model.Camera
		specs []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Brand, &c.Model, &c.Description,
		&c.Price, &c.DailyRentPrice, &c.ImageURL, &c.Available,
		&specs, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &c.Specifications); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func specsJSON(m map[string]string) ([]byte, error) {
	if m == nil {
		m = map[string]string{}
	}
	return json.Marshal(m)
}
