package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgLockNotAvailable = "55P03"
	pgUniqueViolation  = "23505"
)

// Store is the gorm implementation of repo.Repository and repo.AdminRepository.
type Store struct {
	db          *gorm.DB
	locks       *keyedLock
	lockTimeout time.Duration
}

var (
	_ repo.Repository      = (*Store)(nil)
	_ repo.AdminRepository = (*Store)(nil)
)

func NewStore(db *gorm.DB, lockTimeout time.Duration) *Store {
	return &Store{db: db, locks: newKeyedLock(), lockTimeout: lockTimeout}
}

func (s *Store) bind(tx *gorm.DB) *Store {
	return &Store{db: tx, locks: s.locks, lockTimeout: s.lockTimeout}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable:
			return fmt.Errorf("%w: %s", repo.ErrLockTimeout, pgErr.Message)
		case pgUniqueViolation:
			return repo.ErrDuplicate
		}
	}
	if code, ok := sqliteCode(err); ok && (code == sqlite3.ErrBusy || code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %s", repo.ErrLockTimeout, err)
	}
	return err
}

func sqliteCode(err error) (sqlite3.ErrNo, bool) {
	var value sqlite3.Error
	if errors.As(err, &value) {
		return value.Code, true
	}
	var ptr *sqlite3.Error
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, true
	}
	return 0, false
}

func (s *Store) GetApartment(ctx context.Context, id string) (*models.Apartment, error) {
	var apartment models.Apartment
	err := s.db.WithContext(ctx).Preload("Creator").Where("id = ?", id).First(&apartment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &apartment, nil
}

func (s *Store) apartmentQuery(ctx context.Context, filter repo.ApartmentFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Apartment{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		q = q.Where("price_per_hour >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price_per_hour <= ?", *filter.MaxPrice)
	}
	if filter.FreeFrom != nil && filter.FreeUntil != nil {
		overlapping := s.db.Model(&models.Unavailability{}).Select("1").
			Where("apartment_unavailabilities.apartment_id = apartments.id").
			Where("start_datetime < ? AND end_datetime > ?", filter.FreeUntil.UTC(), filter.FreeFrom.UTC())
		q = q.Where("NOT EXISTS (?)", overlapping)
	}
	return q
}

func (s *Store) ListApartments(ctx context.Context, filter repo.ApartmentFilter) ([]models.Apartment, error) {
	q := s.apartmentQuery(ctx, filter).Order("created_at ASC").Order("id ASC")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var apartments []models.Apartment
	if err := q.Find(&apartments).Error; err != nil {
		return nil, translate(err)
	}
	return apartments, nil
}

func (s *Store) CountApartments(ctx context.Context, filter repo.ApartmentFilter) (int64, error) {
	var count int64
	if err := s.apartmentQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (s *Store) InsertApartment(ctx context.Context, apartment *models.Apartment) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(apartment).Error)
}

// UpdateApartment writes every column of an existing apartment. It never
// inserts, so an apartment deleted since it was read stays deleted.
func (s *Store) UpdateApartment(ctx context.Context, apartment *models.Apartment) error {
	res := s.db.WithContext(ctx).Model(apartment).
		Select("*").Omit(clause.Associations, "id", "created_at").
		Updates(apartment)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteApartment removes the apartment together with its unavailabilities.
func (s *Store) DeleteApartment(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("apartment_id = ?", id).Delete(&models.Unavailability{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Apartment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (s *Store) Unavailabilities(ctx context.Context, apartmentID string) ([]models.Unavailability, error) {
	var ledger []models.Unavailability
	err := s.db.WithContext(ctx).
		Where("apartment_id = ?", apartmentID).
		Order("start_datetime ASC").Order("id ASC").
		Find(&ledger).Error
	if err != nil {
		return nil, translate(err)
	}
	return ledger, nil
}

func (s *Store) UnavailabilitiesFor(ctx context.Context, apartmentIDs []string) (map[string][]models.Unavailability, error) {
	ledgers := make(map[string][]models.Unavailability, len(apartmentIDs))
	if len(apartmentIDs) == 0 {
		return ledgers, nil
	}

	var rows []models.Unavailability
	err := s.db.WithContext(ctx).
		Where("apartment_id IN ?", apartmentIDs).
		Order("start_datetime ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, row := range rows {
		ledgers[row.ApartmentID] = append(ledgers[row.ApartmentID], row)
	}
	return ledgers, nil
}

func (s *Store) ListUnavailabilities(ctx context.Context) ([]models.Unavailability, error) {
	var rows []models.Unavailability
	err := s.db.WithContext(ctx).
		Preload("Apartment").
		Order("start_datetime ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *Store) GetUnavailability(ctx context.Context, id string) (*models.Unavailability, error) {
	var row models.Unavailability
	if err := s.db.WithContext(ctx).Preload("Apartment").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (s *Store) HasOverlap(ctx context.Context, apartmentID string, start, end time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Unavailability{}).
		Where("apartment_id = ? AND start_datetime < ? AND end_datetime > ?", apartmentID, end.UTC(), start.UTC()).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Store) InsertUnavailability(ctx context.Context, u *models.Unavailability) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (s *Store) LockForUpdate(ctx context.Context, apartmentID string, fn func(tx repo.Repository, apartment *models.Apartment) error) error {
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	release, err := s.locks.acquire(lockCtx, apartmentID)
	if err != nil {
		return err
	}
	defer release()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" && s.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return translate(err)
			}
		}

		// SQLite has no row locks; its dialector drops the clause. The keyed
		// lock covers this process and writes serialise on the database file.
		var apartment models.Apartment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", apartmentID).
			First(&apartment).Error
		if err != nil {
			return translate(err)
		}
		return fn(s.bind(tx), &apartment)
	})
}

func (s *Store) GetAdmin(ctx context.Context, id string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) InsertAdmin(ctx context.Context, user *models.AdminUser) error {
	user.Email = strings.ToLower(user.Email)
	return translate(s.db.WithContext(ctx).Create(user).Error)
}
