package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"camrental/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrCameraNotFound    ErrCode = "CAMERA_NOT_FOUND"
	ErrCameraUnavailable ErrCode = "CAMERA_UNAVAILABLE"
	ErrInvalidDates      ErrCode = "INVALID_DATES"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrInvalidTransition ErrCode = "INVALID_TRANSITION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	GetCamera(ctx context.Context, cameraID int64) (*model.Camera, error)
	ReserveCamera(ctx context.Context, tx *sql.Tx, cameraID int64) (bool, error)
	ReleaseCamera(ctx context.Context, tx *sql.Tx, cameraID int64) error

	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	OwnedForUpdate(ctx context.Context, tx *sql.Tx, rentalID, userID int64) (*model.Rental, error)
	SetStatus(ctx context.Context, tx *sql.Tx, rentalID int64, status model.RentalStatus) error

	ListByUser(ctx context.Context, userID int64) ([]model.Rental, error)
	ByIDForUser(ctx context.Context, rentalID, userID int64) (*model.Rental, error)
}

type Service interface {
	// Create reserves an available camera and opens a pending rental.
	Create(ctx context.Context, userID, cameraID int64, start, end time.Time) (*model.Rental, error)

	// UpdateStatus moves a rental through the lifecycle; a terminal status
	// frees the camera.
	UpdateStatus(ctx context.Context, rentalID, userID int64, status model.RentalStatus) (*model.Rental, error)

	ListByUser(ctx context.Context, userID int64) ([]model.Rental, error)
	GetForUser(ctx context.Context, rentalID, userID int64) (*model.Rental, error)
}

type service struct {
	db *sql.DB
	r  Repo
}

func New(db *sql.DB, r Repo) Service { return &service{db: db, r: r} }

// Days charges any started day in full.
func rentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

func (s *service) Create(ctx context.Context, userID, cameraID int64, start, end time.Time) (_ *model.Rental, err error) {
	if !end.After(start) {
		return nil, makeErr(ErrInvalidDates)
	}

	cam, err := s.r.GetCamera(ctx, cameraID)
	if err != nil {
		return nil, err
	}
	if cam == nil {
		return nil, makeErr(ErrCameraNotFound)
	}
	if !cam.Available {
		return nil, makeErr(ErrCameraUnavailable)
	}

	total := float64(rentalDays(start, end)) * cam.DailyRentPrice

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Conditional update: the availability re-check and the flip happen in
	// one statement, so concurrent creates cannot both reserve.
	reserved, err := s.r.ReserveCamera(ctx, tx, cameraID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		err = makeErr(ErrCameraUnavailable)
		return nil, err
	}

	rental := &model.Rental{
		UserID:        userID,
		CameraID:      cameraID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    total,
		Status:        model.RentalPending,
		PaymentStatus: model.PaymentPending,
	}
	if err = s.r.Insert(ctx, tx, rental); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.r.ByIDForUser(ctx, rental.ID, userID)
}

func (s *service) UpdateStatus(ctx context.Context, rentalID, userID int64, status model.RentalStatus) (_ *model.Rental, err error) {
	if !status.Valid() {
		return nil, makeErr(ErrInvalidTransition)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.r.OwnedForUpdate(ctx, tx, rentalID, userID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		err = makeErr(ErrNotFound)
		return nil, err
	}
	if !model.CanTransition(rental.Status, status) {
		err = makeErr(ErrInvalidTransition)
		return nil, err
	}

	if err = s.r.SetStatus(ctx, tx, rentalID, status); err != nil {
		return nil, err
	}
	if status.Terminal() {
		if err = s.r.ReleaseCamera(ctx, tx, rental.CameraID); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.r.ByIDForUser(ctx, rentalID, userID)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]model.Rental, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) GetForUser(ctx context.Context, rentalID, userID int64) (*model.Rental, error) {
	return s.r.ByIDForUser(ctx, rentalID, userID)
}
