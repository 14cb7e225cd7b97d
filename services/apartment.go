package services

import (
	"context"
	"errors"
	"time"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/kataras/golog"
)

// Principal is the authenticated admin acting on a request.
type Principal struct {
	ID        string
	Superuser bool
}

// CanModifyFunc decides whether principal may change or remove apartment.
type CanModifyFunc func(principal Principal, apartment *models.Apartment) bool

func CreatorOrSuperuser(principal Principal, apartment *models.Apartment) bool {
	return principal.Superuser || (principal.ID != "" && principal.ID == apartment.CreatorID)
}

type ApartmentInput struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Description  string          `json:"description"`
	City         string          `json:"city" validate:"max=255"`
	Country      string          `json:"country" validate:"max=255"`
	Latitude     float64         `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64         `json:"longitude" validate:"gte=-180,lte=180"`
	Category     models.Category `json:"category" validate:"required,oneof=room studio apartment villa"`
	PricePerHour float64         `json:"price_per_hour" validate:"gte=0"`
	MainPhoto    string          `json:"main_photo" validate:"omitempty,url"`
	Gallery      []string        `json:"gallery" validate:"max=3,dive,url"`
}

// ApartmentPatch carries the fields an update may change. Nil means
// unchanged.
type ApartmentPatch struct {
	Title        *string          `json:"title" validate:"omitempty,max=255"`
	Description  *string          `json:"description"`
	City         *string          `json:"city" validate:"omitempty,max=255"`
	Country      *string          `json:"country" validate:"omitempty,max=255"`
	Latitude     *float64         `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64         `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Category     *models.Category `json:"category" validate:"omitempty,oneof=room studio apartment villa"`
	PricePerHour *float64         `json:"price_per_hour" validate:"omitempty,gte=0"`
	MainPhoto    *string          `json:"main_photo" validate:"omitempty,url"`
	Gallery      *[]string        `json:"gallery" validate:"omitempty,max=3,dive,url"`
}

type ApartmentDetail struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	City             string                  `json:"city"`
	Country          string                  `json:"country"`
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	Category         models.Category         `json:"category"`
	PricePerHour     float64                 `json:"price_per_hour"`
	MainPhoto        string                  `json:"main_photo"`
	Gallery          []string                `json:"gallery"`
	CreatorEmail     string                  `json:"creator_email"`
	Status           models.Status           `json:"status"`
	Unavailabilities []models.Unavailability `json:"unavailabilities"`
}

type ApartmentService struct {
	repo      repo.Repository
	images    repo.ImageStore
	canModify CanModifyFunc
	now       func() time.Time
	logger    *golog.Logger
}

// NewApartmentService wires the apartment operations. images may be nil when
// no image backend is configured; canModify defaults to CreatorOrSuperuser.
func NewApartmentService(r repo.Repository, images repo.ImageStore, canModify CanModifyFunc, now func() time.Time, logger *golog.Logger) *ApartmentService {
	if canModify == nil {
		canModify = CreatorOrSuperuser
	}
	if now == nil {
		now = time.Now
	}
	return &ApartmentService{repo: r, images: images, canModify: canModify, now: now, logger: logger}
}

func (s *ApartmentService) Create(ctx context.Context, principal Principal, in ApartmentInput) (string, error) {
	if !in.Category.Valid() {
		return "", newError(KindValidation, "unknown category")
	}
	if in.PricePerHour < 0 {
		return "", newError(KindValidation, "price_per_hour must not be negative")
	}

	apartment := &models.Apartment{
		CreatorID:    principal.ID,
		Title:        in.Title,
		Description:  in.Description,
		City:         in.City,
		Country:      in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Category:     in.Category,
		PricePerHour: in.PricePerHour,
		MainPhoto:    in.MainPhoto,
	}
	if err := apartment.SetGallery(in.Gallery); err != nil {
		return "", galleryError(err)
	}

	if err := s.repo.InsertApartment(ctx, apartment); err != nil {
		s.logger.Errorf("insert apartment: %v", err)
		return "", fromStore(err, "apartment not found")
	}
	s.logger.Infof("apartment %s created by %s", apartment.ID, principal.ID)
	return apartment.ID, nil
}

func (s *ApartmentService) Detail(ctx context.Context, id string) (*ApartmentDetail, error) {
	apartment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	ledger, err := s.repo.Unavailabilities(ctx, id)
	if err != nil {
		s.logger.Errorf("load ledger of %s: %v", id, err)
		return nil, fromStore(err, "apartment not found")
	}
	if ledger == nil {
		ledger = []models.Unavailability{}
	}

	detail := &ApartmentDetail{
		ID:               apartment.ID,
		Title:            apartment.Title,
		Description:      apartment.Description,
		City:             apartment.City,
		Country:          apartment.Country,
		Latitude:         apartment.Latitude,
		Longitude:        apartment.Longitude,
		Category:         apartment.Category,
		PricePerHour:     apartment.PricePerHour,
		MainPhoto:        apartment.MainPhoto,
		Gallery:          apartment.GalleryURLs(),
		Status:           ComputeStatus(ledger, s.now()),
		Unavailabilities: ledger,
	}
	if apartment.Creator != nil {
		detail.CreatorEmail = apartment.Creator.Email
	}
	return detail, nil
}

func (s *ApartmentService) Update(ctx context.Context, principal Principal, id string, patch ApartmentPatch) (*models.Apartment, error) {
	apartment, err := s.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		apartment.Title = *patch.Title
	}
	if patch.Description != nil {
		apartment.Description = *patch.Description
	}
	if patch.City != nil {
		apartment.City = *patch.City
	}
	if patch.Country != nil {
		apartment.Country = *patch.Country
	}
	if patch.Latitude != nil {
		apartment.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		apartment.Longitude = *patch.Longitude
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, newError(KindValidation, "unknown category")
		}
		apartment.Category = *patch.Category
	}
	if patch.PricePerHour != nil {
		if *patch.PricePerHour < 0 {
			return nil, newError(KindValidation, "price_per_hour must not be negative")
		}
		apartment.PricePerHour = *patch.PricePerHour
	}
	if patch.MainPhoto != nil {
		apartment.MainPhoto = *patch.MainPhoto
	}
	if patch.Gallery != nil {
		if err := apartment.SetGallery(*patch.Gallery); err != nil {
			return nil, galleryError(err)
		}
	}

	apartment.Creator = nil
	if err := s.repo.UpdateApartment(ctx, apartment); err != nil {
		s.logger.Errorf("update apartment %s: %v", id, err)
		return nil, fromStore(err, "apartment not found")
	}
	return apartment, nil
}

// Delete removes the apartment and its unavailabilities, then hands its
// images to the image store for background removal.
func (s *ApartmentService) Delete(ctx context.Context, principal Principal, id string) error {
	apartment, err := s.authorize(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteApartment(ctx, id); err != nil {
		svcErr := fromStore(err, "apartment not found")
		if KindOf(svcErr) == KindInternal {
			s.logger.Errorf("delete apartment %s: %v", id, err)
		}
		return svcErr
	}
	if s.images != nil {
		s.images.ScheduleDelete(apartment.ImageURLs())
	}
	s.logger.Infof("apartment %s deleted by %s", id, principal.ID)
	return nil
}

func (s *ApartmentService) get(ctx context.Context, id string) (*models.Apartment, error) {
	apartment, err := s.repo.GetApartment(ctx, id)
	if err != nil {
		svcErr := fromStore(err, "apartment not found")
		if KindOf(svcErr) == KindInternal {
			s.logger.Errorf("get apartment %s: %v", id, err)
		}
		return nil, svcErr
	}
	return apartment, nil
}

func (s *ApartmentService) authorize(ctx context.Context, principal Principal, id string) (*models.Apartment, error) {
	apartment, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canModify(principal, apartment) {
		return nil, newError(KindForbidden, "you don't have permission to modify this apartment")
	}
	return apartment, nil
}

func galleryError(err error) error {
	if errors.Is(err, models.ErrGalleryTooLarge) {
		return &Error{Kind: KindValidation, Message: "gallery holds at most 3 images", Err: err}
	}
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
