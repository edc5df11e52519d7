package rentalrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"camrental/model"
)

type Repo interface {
	// Camera lookups and availability. ReserveCamera flips an available
	// camera to unavailable in one conditional update; false means the
	// camera was already taken.
	GetCamera(ctx context.Context, cameraID int64) (*model.Camera, error)
	ReserveCamera(ctx context.Context, tx *sql.Tx, cameraID int64) (bool, error)
	ReleaseCamera(ctx context.Context, tx *sql.Tx, cameraID int64) error

	// Rentals
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	OwnedForUpdate(ctx context.Context, tx *sql.Tx, rentalID, userID int64) (*model.Rental, error)
	SetStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error

	// Reads with the camera relation resolved.
	ListByUser(ctx context.Context, userID int64) ([]model.Rental, error)
	ByIDForUser(ctx context.Context, rentalID, userID int64) (*model.Rental, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) GetCamera(ctx context.Context, cameraID int64) (*model.Camera, error) {
	c := &model.Camera{}
	var specs []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, brand, model, description, price, daily_rent_price,
		       image_url, available, specifications, created_at, updated_at
		FROM cameras
		WHERE id = $1`, cameraID,
	).Scan(&c.ID, &c.Name, &c.Brand, &c.Model, &c.Description,
		&c.Price, &c.DailyRentPrice, &c.ImageURL, &c.Available,
		&specs, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &c.Specifications); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (r *repo) ReserveCamera(ctx context.Context, tx *sql.Tx, cameraID int64) (bool, error) {
	// Guard: only one of two concurrent reservations can see available=true.
	const q = `
		UPDATE cameras
		SET available = FALSE,
		    updated_at = now()
		WHERE id = $1
		AND available = TRUE`
	res, err := tx.ExecContext(ctx, q, cameraID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ReleaseCamera(ctx context.Context, tx *sql.Tx, cameraID int64) error {
	// Best effort: a camera deleted from the catalog is ignored.
	const q = `
		UPDATE cameras
		SET available = TRUE,
		    updated_at = now()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, cameraID)
	return err
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rental *model.Rental) error {
	const q = `
		INSERT INTO rentals (user_id, camera_id, start_date, end_date, total_price, status, payment_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		rental.UserID, rental.CameraID, rental.StartDate, rental.EndDate,
		rental.TotalPrice, rental.Status, rental.PaymentStatus,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
}

func (r *repo) OwnedForUpdate(ctx context.Context, tx *sql.Tx, rentalID, userID int64) (*model.Rental, error) {
	const q = `
		SELECT id, user_id, camera_id, start_date, end_date, total_price, status, payment_status, created_at, updated_at
		FROM rentals
		WHERE id = $1
		AND user_id = $2
		FOR UPDATE`
	rental := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, rentalID, userID).Scan(
		&rental.ID, &rental.UserID, &rental.CameraID,
		&rental.StartDate, &rental.EndDate, &rental.TotalPrice,
		&rental.Status, &rental.PaymentStatus,
		&rental.CreatedAt, &rental.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error {
	const q = `
		UPDATE rentals
		SET status = $2,
		    updated_at = now()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, status)
	return err
}

const rentalJoinCols = `
		r.id, r.user_id, r.camera_id, r.start_date, r.end_date, r.total_price,
		r.status, r.payment_status, r.created_at, r.updated_at,
		c.id, c.name, c.brand, c.model, c.description, c.price, c.daily_rent_price,
		c.image_url, c.available, c.specifications, c.created_at, c.updated_at`

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Rental, error) {
	const q = `
		SELECT` + rentalJoinCols + `
		FROM rentals r
		JOIN cameras c ON c.id = r.camera_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		rental, err := scanRentalWithCamera(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rental)
	}
	return out, rows.Err()
}

func (r *repo) ByIDForUser(ctx context.Context, rentalID, userID int64) (*model.Rental, error) {
	const q = `
		SELECT` + rentalJoinCols + `
		FROM rentals r
		JOIN cameras c ON c.id = r.camera_id
		WHERE r.id = $1
		AND r.user_id = $2`
	rental, err := scanRentalWithCamera(r.db.QueryRowContext(ctx, q, rentalID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rental, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRentalWithCamera(row rowScanner) (*model.Rental, error) {
	var (
		rental model.Rental
		cam    model.Camera
		specs  []byte
	)
	err := row.Scan(
		&rental.ID, &rental.UserID, &rental.CameraID,
		&rental.StartDate, &rental.EndDate, &rental.TotalPrice,
		&rental.Status, &rental.PaymentStatus,
		&rental.CreatedAt, &rental.UpdatedAt,
		&cam.ID, &cam.Name, &cam.Brand, &cam.Model, &cam.Description,
		&cam.Price, &cam.DailyRentPrice, &cam.ImageURL, &cam.Available,
		&specs, &cam.CreatedAt, &cam.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &cam.Specifications); err != nil {
			return nil, err
		}
	}
	rental.Camera = &cam
	return &rental, nil
}
