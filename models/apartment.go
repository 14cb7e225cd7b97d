package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MaxGallerySize = 3

var ErrGalleryTooLarge = errors.New("gallery holds at most 3 images")

type Category string

const (
	CategoryRoom      Category = "room"
	CategoryStudio    Category = "studio"
	CategoryApartment Category = "apartment"
	CategoryVilla     Category = "villa"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRoom, CategoryStudio, CategoryApartment, CategoryVilla:
		return true
	}
	return false
}

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

type Apartment struct {
	ID           string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatorID    string         `json:"creator_id" gorm:"type:varchar(36);not null;index"`
	Creator      *AdminUser     `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	City         string         `json:"city" gorm:"size:255;default:'Douala'"`
	Country      string         `json:"country" gorm:"size:255;default:'Cameroon'"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Category     Category       `json:"category" gorm:"size:20;not null;index"`
	PricePerHour float64        `json:"price_per_hour" gorm:"type:decimal(10,2);not null;default:0;index"`
	MainPhoto    string         `json:"main_photo"`
	Gallery      datatypes.JSON `json:"gallery"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (a *Apartment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// GalleryURLs decodes the gallery column. A malformed column reads as empty.
func (a *Apartment) GalleryURLs() []string {
	urls := []string{}
	if len(a.Gallery) == 0 {
		return urls
	}
	if err := json.Unmarshal(a.Gallery, &urls); err != nil {
		return []string{}
	}
	return urls
}

func (a *Apartment) SetGallery(urls []string) error {
	if len(urls) > MaxGallerySize {
		return ErrGalleryTooLarge
	}
	if urls == nil {
		urls = []string{}
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	a.Gallery = datatypes.JSON(raw)
	return nil
}

// ImageURLs lists every image reference owned by the apartment.
func (a *Apartment) ImageURLs() []string {
	var urls []string
	if a.MainPhoto != "" {
		urls = append(urls, a.MainPhoto)
	}
	return append(urls, a.GalleryURLs()...)
}
