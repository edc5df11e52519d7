package camera

import "camrental/model"

// CameraReq is the catalog write payload for create and update. The
// availability flag is deliberately absent: it is owned by the rental
// lifecycle.
type CameraReq struct {
	Name           string            `json:"name" validate:"required"`
	Brand          string            `json:"brand" validate:"required"`
	Model          string            `json:"model" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Price          float64           `json:"price" validate:"gte=0"`
	DailyRentPrice float64           `json:"dailyRentPrice" validate:"gte=0"`
	ImageURL       string            `json:"imageUrl" validate:"required"`
	Specifications map[string]string `json:"specifications"`
}

func (r CameraReq) toModel() *model.Camera {
	return &model.Camera{
		Name:           r.Name,
		Brand:          r.Brand,
		Model:          r.Model,
		Description:    r.Description,
		Price:          r.Price,
		DailyRentPrice: r.DailyRentPrice,
		ImageURL:       r.ImageURL,
		Specifications: r.Specifications,
	}
}
