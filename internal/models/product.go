package models

import "time"

// Rating is the aggregate customer rating carried by every product.
type Rating struct {
	Rate  float64 `json:"rate" gorm:"column:rating_rate"`
	Count int     `json:"count" gorm:"column:rating_count"`
}

// Product represents a catalog product. Category is stored as an open string;
// the fixed category set is enforced by the forms layer, not by the store.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description" validate:"required"`
	Image       string    `json:"image" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Rating      Rating    `json:"rating" gorm:"embedded"`
	UserID      string    `json:"user" gorm:"index;type:varchar(36)" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
