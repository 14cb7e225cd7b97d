package services

import (
	"context"
	"testing"
	"time"

	"checkin-server/models"
	"checkin-server/storage"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *golog.Logger {
	return golog.New().SetLevel("disable")
}

func setupTestDB(t *testing.T) (*gorm.DB, *storage.Store) {
	db, err := storage.OpenSQLite(":memory:", 0)
	require.NoError(t, err)
	require.NoError(t, storage.Migrate(db))
	return db, storage.NewStore(db, 5*time.Second)
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func hourOn(day, hour, minute int) time.Time {
	return time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
}

type apartmentSeed struct {
	title     string
	category  models.Category
	price     float64
	createdAt time.Time
}

// seedAdmin makes sure an admin with the given id exists.
func seedAdmin(t *testing.T, store *storage.Store, id string) {
	ctx := context.Background()
	if _, err := store.GetAdmin(ctx, id); err == nil {
		return
	}
	require.NoError(t, store.InsertAdmin(ctx, &models.AdminUser{
		ID:       id,
		Email:    id + "@checkin.test",
		Password: "not-a-hash",
		IsActive: true,
	}))
}

func seedApartments(t *testing.T, store *storage.Store, seeds ...apartmentSeed) []*models.Apartment {
	seedAdmin(t, store, "creator")
	out := make([]*models.Apartment, 0, len(seeds))
	for _, seed := range seeds {
		apt := &models.Apartment{
			CreatorID:    "creator",
			Title:        seed.title,
			Category:     seed.category,
			PricePerHour: seed.price,
			City:         "Douala",
			Country:      "Cameroon",
			CreatedAt:    seed.createdAt,
		}
		require.NoError(t, apt.SetGallery(nil))
		require.NoError(t, store.InsertApartment(context.Background(), apt))
		out = append(out, apt)
	}
	return out
}

func book(t *testing.T, store *storage.Store, apartmentID string, start, end time.Time) {
	require.NoError(t, store.InsertUnavailability(context.Background(), &models.Unavailability{
		ApartmentID: apartmentID,
		Start:       start,
		End:         end,
	}))
}
