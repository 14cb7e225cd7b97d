package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *Store {
	db, err := OpenSQLite(":memory:", 0)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewStore(db, 2*time.Second)
}

func seedApartment(t *testing.T, s *Store, title string, category models.Category, price float64) *models.Apartment {
	ctx := context.Background()
	if _, err := s.GetAdmin(ctx, "creator"); errors.Is(err, repo.ErrNotFound) {
		require.NoError(t, s.InsertAdmin(ctx, &models.AdminUser{ID: "creator", Email: "creator@checkin.test", Password: "hash", IsActive: true}))
	}
	apt := &models.Apartment{
		CreatorID:    "creator",
		Title:        title,
		Category:     category,
		PricePerHour: price,
		MainPhoto:    "https://example.com/main.jpg",
	}
	require.NoError(t, apt.SetGallery(nil))
	require.NoError(t, s.InsertApartment(context.Background(), apt))
	return apt
}

func TestStore_ApartmentRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	apt := seedApartment(t, s, "Loft", models.CategoryStudio, 42.5)
	assert.NotEmpty(t, apt.ID)

	got, err := s.GetApartment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", got.Title)
	assert.Equal(t, 42.5, got.PricePerHour)
	assert.Equal(t, "Douala", got.City)

	_, err = s.GetApartment(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStore_ListApartmentsFiltersAndOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := seedApartment(t, s, "A", models.CategoryStudio, 40)
	b := seedApartment(t, s, "B", models.CategoryStudio, 50)
	seedApartment(t, s, "C", models.CategoryVilla, 75)
	d := seedApartment(t, s, "D", models.CategoryStudio, 100)

	minPrice, maxPrice := 50.0, 100.0
	got, err := s.ListApartments(ctx, repo.ApartmentFilter{
		Category: models.CategoryStudio,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, d.ID, got[1].ID)

	all, err := s.ListApartments(ctx, repo.ApartmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, a.ID, all[0].ID)
}

func TestStore_DeleteApartmentCascades(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	apt := seedApartment(t, s, "Loft", models.CategoryRoom, 10)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertUnavailability(ctx, &models.Unavailability{
		ApartmentID: apt.ID, Start: start, End: start.Add(time.Hour),
	}))

	require.NoError(t, s.DeleteApartment(ctx, apt.ID))

	ledger, err := s.Unavailabilities(ctx, apt.ID)
	require.NoError(t, err)
	assert.Empty(t, ledger)
	assert.ErrorIs(t, s.DeleteApartment(ctx, apt.ID), repo.ErrNotFound)
}

func TestStore_UnavailabilitiesForGroupsByApartment(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := seedApartment(t, s, "A", models.CategoryRoom, 10)
	b := seedApartment(t, s, "B", models.CategoryRoom, 10)
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{a.ID, a.ID, b.ID} {
		start := base.Add(time.Duration(3-i) * time.Hour)
		require.NoError(t, s.InsertUnavailability(ctx, &models.Unavailability{
			ApartmentID: id, Start: start, End: start.Add(30 * time.Minute),
		}))
	}

	ledgers, err := s.UnavailabilitiesFor(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, ledgers[a.ID], 2)
	assert.Len(t, ledgers[b.ID], 1)
	assert.True(t, ledgers[a.ID][0].Start.Before(ledgers[a.ID][1].Start))

	empty, err := s.UnavailabilitiesFor(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_LockForUpdate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	apt := seedApartment(t, s, "Loft", models.CategoryRoom, 10)

	err := s.LockForUpdate(ctx, "missing", func(tx repo.Repository, _ *models.Apartment) error {
		t.Fatal("fn must not run for a missing apartment")
		return nil
	})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rollback := errors.New("rollback")
	err = s.LockForUpdate(ctx, apt.ID, func(tx repo.Repository, locked *models.Apartment) error {
		assert.Equal(t, apt.ID, locked.ID)
		require.NoError(t, tx.InsertUnavailability(ctx, &models.Unavailability{
			ApartmentID: apt.ID, Start: start, End: start.Add(time.Hour),
		}))
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	ledger, err := s.Unavailabilities(ctx, apt.ID)
	require.NoError(t, err)
	assert.Empty(t, ledger, "failed unit of work must roll back")
	assert.Zero(t, s.locks.size())
}

func TestStore_UpdateDoesNotResurrectDeletedApartment(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	apt := seedApartment(t, s, "Loft", models.CategoryRoom, 10)

	loaded, err := s.GetApartment(ctx, apt.ID)
	require.NoError(t, err)
	require.NoError(t, s.DeleteApartment(ctx, apt.ID))

	loaded.Title = "Loft, renovated"
	assert.ErrorIs(t, s.UpdateApartment(ctx, loaded), repo.ErrNotFound)
	_, err = s.GetApartment(ctx, apt.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStore_UpdateApartment(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	apt := seedApartment(t, s, "Loft", models.CategoryRoom, 10)

	loaded, err := s.GetApartment(ctx, apt.ID)
	require.NoError(t, err)
	loaded.Title = "Penthouse"
	loaded.PricePerHour = 90
	loaded.Creator = nil
	require.NoError(t, s.UpdateApartment(ctx, loaded))

	got, err := s.GetApartment(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Penthouse", got.Title)
	assert.Equal(t, 90.0, got.PricePerHour)
	assert.Equal(t, "creator", got.CreatorID)
	assert.True(t, got.CreatedAt.Equal(loaded.CreatedAt))
}

func TestStore_ForeignKeysAreEnforced(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	orphan := &models.Apartment{CreatorID: "ghost", Title: "Nowhere", Category: models.CategoryRoom}
	assert.Error(t, s.InsertApartment(ctx, orphan))

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Error(t, s.InsertUnavailability(ctx, &models.Unavailability{
		ApartmentID: "missing", Start: start, End: start.Add(time.Hour),
	}))
}

func TestStore_ListApartmentsPagesAndWindow(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		ids = append(ids, seedApartment(t, s, title, models.CategoryRoom, 10).ID)
	}

	count, err := s.CountApartments(ctx, repo.ApartmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	page, err := s.ListApartments(ctx, repo.ApartmentFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)
	assert.Equal(t, ids[3], page[1].ID)

	ten := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	book := func(id string, start, end time.Time) {
		require.NoError(t, s.InsertUnavailability(ctx, &models.Unavailability{ApartmentID: id, Start: start, End: end}))
	}
	book(ids[0], ten, ten.Add(2*time.Hour))
	book(ids[1], ten.Add(-2*time.Hour), ten)
	book(ids[2], ten.Add(2*time.Hour), ten.Add(3*time.Hour))
	book(ids[3], ten.Add(30*time.Minute), ten.Add(45*time.Minute))

	from, until := ten, ten.Add(2*time.Hour)
	window := repo.ApartmentFilter{FreeFrom: &from, FreeUntil: &until}
	count, err = s.CountApartments(ctx, window)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	free, err := s.ListApartments(ctx, window)
	require.NoError(t, err)
	require.Len(t, free, 3)
	assert.Equal(t, ids[1], free[0].ID, "abutting the start")
	assert.Equal(t, ids[2], free[1].ID, "abutting the end")
	assert.Equal(t, ids[4], free[2].ID)

	onlyFrom := repo.ApartmentFilter{FreeFrom: &from}
	count, err = s.CountApartments(ctx, onlyFrom)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestStore_LockOnDisjointApartmentDoesNotWait(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "checkin.db"), 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	ctx := context.Background()
	// open a second pooled connection up front
	c1, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	c2, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	c1.Close()
	c2.Close()

	s := NewStore(db, 2*time.Second)
	a := seedApartment(t, s, "A", models.CategoryRoom, 10)
	b := seedApartment(t, s, "B", models.CategoryRoom, 10)
	ten := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	holding := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.LockForUpdate(ctx, a.ID, func(tx repo.Repository, _ *models.Apartment) error {
			if err := tx.InsertUnavailability(ctx, &models.Unavailability{
				ApartmentID: a.ID, Start: ten, End: ten.Add(time.Hour),
			}); err != nil {
				return err
			}
			close(holding)
			time.Sleep(time.Second)
			return nil
		})
	}()

	select {
	case <-holding:
	case err := <-done:
		t.Fatalf("unit of work on A ended early: %v", err)
	}

	began := time.Now()
	err = s.LockForUpdate(ctx, b.ID, func(tx repo.Repository, locked *models.Apartment) error {
		assert.Equal(t, b.ID, locked.ID)
		_, err := tx.HasOverlap(ctx, b.ID, ten, ten.Add(time.Hour))
		return err
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(began), 500*time.Millisecond, "lock on B waited for A")

	require.NoError(t, <-done)
	ledger, err := s.Unavailabilities(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ledger, 1)
}

func TestKeyedLock_SerialisesSameKeyOnly(t *testing.T) {
	locks := newKeyedLock()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locks.acquire(ctx, "apt-1")
			require.NoError(t, err)
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)

	release, err := locks.acquire(ctx, "apt-1")
	require.NoError(t, err)
	other, err := locks.acquire(ctx, "apt-2")
	require.NoError(t, err, "a different key must not block")
	other()
	release()
	assert.Zero(t, locks.size())
}

func TestKeyedLock_Timeout(t *testing.T) {
	locks := newKeyedLock()
	release, err := locks.acquire(context.Background(), "apt-1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locks.acquire(ctx, "apt-1")
	assert.ErrorIs(t, err, repo.ErrLockTimeout)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), repo.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), repo.ErrDuplicate)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"}), repo.ErrLockTimeout)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), repo.ErrDuplicate)
	assert.ErrorIs(t, translate(sqlite3.Error{Code: sqlite3.ErrBusy}), repo.ErrLockTimeout)
	assert.ErrorIs(t, translate(&sqlite3.Error{Code: sqlite3.ErrLocked}), repo.ErrLockTimeout)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestStore_AdminByEmailIsCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertAdmin(ctx, &models.AdminUser{Email: "Landry@Example.com", Password: "hash", IsActive: true}))
	got, err := s.GetAdminByEmail(ctx, "LANDRY@example.com")
	require.NoError(t, err)
	assert.Equal(t, "landry@example.com", got.Email)

	err = s.InsertAdmin(ctx, &models.AdminUser{Email: "landry@example.com", Password: "hash"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/checkin/loft.jpg", "checkin/loft", true},
		{"https://res.cloudinary.com/demo/image/upload/loft.png", "loft", true},
		{"https://res.cloudinary.com/demo/image/upload/v12/a/b/c.webp?x=1", "a/b/c", true},
		{"https://example.com/upload/loft.jpg", "", false},
		{"https://res.cloudinary.com/demo/image/fetch/loft.jpg", "", false},
	}
	for _, tc := range tests {
		got, ok := PublicIDFromURL(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.want, got, tc.url)
	}
}

func TestStore_HasOverlapIsStrict(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	apt := seedApartment(t, s, "Loft", models.CategoryRoom, 10)

	ten := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertUnavailability(ctx, &models.Unavailability{
		ApartmentID: apt.ID, Start: ten, End: ten.Add(time.Hour),
	}))

	overlap, err := s.HasOverlap(ctx, apt.ID, ten.Add(30*time.Minute), ten.Add(45*time.Minute))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = s.HasOverlap(ctx, apt.ID, ten.Add(time.Hour), ten.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap, "abutting the end")

	overlap, err = s.HasOverlap(ctx, apt.ID, ten.Add(-time.Hour), ten)
	require.NoError(t, err)
	assert.False(t, overlap, "abutting the start")

	overlap, err = s.HasOverlap(ctx, "other", ten, ten.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)
}
