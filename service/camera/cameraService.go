package camerasvc

import (
	"context"
	"errors"

	"camrental/model"
)

var ErrInvalidPayload = errors.New("invalid payload")

type Repo interface {
	Create(ctx context.Context, c *model.Camera) error
	List(ctx context.Context) ([]model.Camera, error)
	ByID(ctx context.Context, id int64) (*model.Camera, error)
	Update(ctx context.Context, id int64, c *model.Camera) (*model.Camera, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, c *model.Camera) error
	List(ctx context.Context) ([]model.Camera, error)
	Detail(ctx context.Context, id int64) (*model.Camera, error)

	// Update overwrites the allow-listed catalog fields; the availability
	// flag belongs to the rental lifecycle and cannot be set here.
	Update(ctx context.Context, id int64, c *model.Camera) (*model.Camera, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func validate(c *model.Camera) error {
	if c.Name == "" || c.Brand == "" || c.Model == "" || c.Description == "" || c.ImageURL == "" {
		return ErrInvalidPayload
	}
	if c.Price < 0 || c.DailyRentPrice < 0 {
		return ErrInvalidPayload
	}
	return nil
}

func (s *service) Create(ctx context.Context, c *model.Camera) error {
	if err := validate(c); err != nil {
		return err
	}
	return s.r.Create(ctx, c)
}

func (s *service) List(ctx context.Context) ([]model.Camera, error) { return s.r.List(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Camera, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, c *model.Camera) (*model.Camera, error) {
	if err := validate(c); err != nil {
		return nil, err
	}
	return s.r.Update(ctx, id, c)
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.r.Delete(ctx, id)
}
