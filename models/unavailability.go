package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unavailability blocks an apartment for [Start, End). Rows are only ever
// created by a successful reservation and go away with their apartment.
type Unavailability struct {
	ID          string     `json:"reservation_id" gorm:"type:varchar(36);primaryKey"`
	ApartmentID string     `json:"apartment_id" gorm:"type:varchar(36);not null;index:idx_unavailability_span,priority:1"`
	Apartment   *Apartment `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID;constraint:OnDelete:CASCADE"`
	Start       time.Time  `json:"start_datetime" gorm:"column:start_datetime;not null;index:idx_unavailability_span,priority:2"`
	End         time.Time  `json:"end_datetime" gorm:"column:end_datetime;not null"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Unavailability) TableName() string { return "apartment_unavailabilities" }

func (u *Unavailability) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u Unavailability) Interval() Interval {
	return NewInterval(u.Start, u.End)
}
