package repo

//go:generate mockgen -destination=../mocks/mock_repo.go -package=mocks checkin-server/repo Repository,ImageStore

import (
	"context"
	"errors"
	"io"
	"time"

	"checkin-server/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate record")
	ErrLockTimeout = errors.New("lock acquisition timed out")
)

// ApartmentFilter holds the filters that can be pushed down to the store.
// FreeFrom and FreeUntil only apply together and keep apartments with no
// interval strictly overlapping [FreeFrom, FreeUntil). A zero Limit means no
// limit.
type ApartmentFilter struct {
	Category  models.Category
	MinPrice  *float64
	MaxPrice  *float64
	FreeFrom  *time.Time
	FreeUntil *time.Time
	Offset    int
	Limit     int
}

// Repository is the persistence capability set used by the services.
// List methods return rows in a stable order: apartments by (created_at, id),
// unavailabilities by (start, id).
type Repository interface {
	GetApartment(ctx context.Context, id string) (*models.Apartment, error)
	ListApartments(ctx context.Context, filter ApartmentFilter) ([]models.Apartment, error)
	CountApartments(ctx context.Context, filter ApartmentFilter) (int64, error)
	InsertApartment(ctx context.Context, apartment *models.Apartment) error
	UpdateApartment(ctx context.Context, apartment *models.Apartment) error
	DeleteApartment(ctx context.Context, id string) error

	Unavailabilities(ctx context.Context, apartmentID string) ([]models.Unavailability, error)
	UnavailabilitiesFor(ctx context.Context, apartmentIDs []string) (map[string][]models.Unavailability, error)
	ListUnavailabilities(ctx context.Context) ([]models.Unavailability, error)
	GetUnavailability(ctx context.Context, id string) (*models.Unavailability, error)
	// HasOverlap reports whether a stored interval of the apartment strictly
	// overlaps [start, end). Touching endpoints do not count.
	HasOverlap(ctx context.Context, apartmentID string, start, end time.Time) (bool, error)
	InsertUnavailability(ctx context.Context, u *models.Unavailability) error

	// LockForUpdate runs fn inside one transaction holding an exclusive lock on
	// the apartment. fn must only use the tx repository it is given. Returns
	// ErrNotFound when the apartment does not exist and ErrLockTimeout when the
	// lock cannot be taken in time. Not reentrant.
	LockForUpdate(ctx context.Context, apartmentID string, fn func(tx Repository, apartment *models.Apartment) error) error
}

type AdminRepository interface {
	GetAdmin(ctx context.Context, id string) (*models.AdminUser, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	ListAdmins(ctx context.Context) ([]models.AdminUser, error)
	InsertAdmin(ctx context.Context, user *models.AdminUser) error
}

// TokenStore tracks issued refresh tokens so each can be used once.
type TokenStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (bool, error)
}

type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
	// ScheduleDelete removes the images in the background.
	ScheduleDelete(urls []string)
}
