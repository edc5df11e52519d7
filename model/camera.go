package model

import "time"

type Camera struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Brand          string            `json:"brand"`
	Model          string            `json:"model"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	DailyRentPrice float64           `json:"dailyRentPrice"`
	ImageURL       string            `json:"imageUrl"`
	Available      bool              `json:"available"`
	Specifications map[string]string `json:"specifications"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
