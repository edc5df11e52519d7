package rental

import "time"

type CreateRentalReq struct {
	CameraID  int64     `json:"cameraId" validate:"required,gt=0"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending active completed cancelled"`
}
