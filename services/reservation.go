package services

import (
	"context"
	"time"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/kataras/golog"
)

// Confirmation is returned for an accepted reservation.
type Confirmation struct {
	Message     string                `json:"message"`
	Reservation models.Unavailability `json:"reservation"`
}

type ReservationApartment struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    models.Category `json:"category,omitempty"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
}

type ReservationView struct {
	ID        string               `json:"reservation_id"`
	Start     time.Time            `json:"start_datetime"`
	End       time.Time            `json:"end_datetime"`
	Apartment ReservationApartment `json:"apartment"`
}

type ReservationService struct {
	repo   repo.Repository
	logger *golog.Logger
}

func NewReservationService(r repo.Repository, logger *golog.Logger) *ReservationService {
	return &ReservationService{repo: r, logger: logger}
}

// Reserve books [start, end) on the apartment. The existence check, range
// check, overlap check and insert all run under the apartment's lock, and the
// first failing check decides the error.
func (s *ReservationService) Reserve(ctx context.Context, apartmentID string, start, end time.Time) (*Confirmation, error) {
	want := models.NewInterval(start, end)

	var booked models.Unavailability
	err := s.repo.LockForUpdate(ctx, apartmentID, func(tx repo.Repository, apartment *models.Apartment) error {
		if !want.Valid() {
			return newError(KindInvalidRange, "start must be before end")
		}

		overlap, err := tx.HasOverlap(ctx, apartment.ID, want.Start, want.End)
		if err != nil {
			return err
		}
		if overlap {
			return newError(KindConflict, "apartment is not available for this period")
		}

		booked = models.Unavailability{
			ApartmentID: apartment.ID,
			Start:       want.Start,
			End:         want.End,
		}
		return tx.InsertUnavailability(ctx, &booked)
	})
	if err != nil {
		svcErr := fromStore(err, "apartment not found")
		if KindOf(svcErr) == KindInternal {
			s.logger.Errorf("reserve apartment %s: %v", apartmentID, err)
		}
		return nil, svcErr
	}

	s.logger.Infof("apartment %s reserved from %s to %s", apartmentID,
		booked.Start.Format(time.RFC3339), booked.End.Format(time.RFC3339))
	return &Confirmation{Message: "reservation confirmed", Reservation: booked}, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]ReservationView, error) {
	rows, err := s.repo.ListUnavailabilities(ctx)
	if err != nil {
		s.logger.Errorf("list reservations: %v", err)
		return nil, fromStore(err, "reservation not found")
	}

	views := make([]ReservationView, 0, len(rows))
	for _, row := range rows {
		view := toReservationView(row)
		view.Apartment.Description = ""
		view.Apartment.Category = ""
		views = append(views, view)
	}
	return views, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*ReservationView, error) {
	row, err := s.repo.GetUnavailability(ctx, id)
	if err != nil {
		svcErr := fromStore(err, "reservation not found")
		if KindOf(svcErr) == KindInternal {
			s.logger.Errorf("get reservation %s: %v", id, err)
		}
		return nil, svcErr
	}
	view := toReservationView(*row)
	return &view, nil
}

func toReservationView(row models.Unavailability) ReservationView {
	view := ReservationView{
		ID:    row.ID,
		Start: row.Start.UTC(),
		End:   row.End.UTC(),
	}
	if row.Apartment != nil {
		view.Apartment = ReservationApartment{
			ID:          row.Apartment.ID,
			Title:       row.Apartment.Title,
			Description: row.Apartment.Description,
			Category:    row.Apartment.Category,
			Latitude:    row.Apartment.Latitude,
			Longitude:   row.Apartment.Longitude,
		}
	} else {
		view.Apartment.ID = row.ApartmentID
	}
	return view
}
