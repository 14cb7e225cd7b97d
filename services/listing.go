package services

import (
	"context"
	"time"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/kataras/golog"
)

const PageSize = 10

// ListingFilter selects apartments for the public listing. Start and End
// only filter when both are set.
type ListingFilter struct {
	Category models.Category
	MinPrice *float64
	MaxPrice *float64
	Start    *time.Time
	End      *time.Time
	Page     int
}

type ListingItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  models.Category `json:"category"`
	Price     float64         `json:"price"`
	City      string          `json:"city"`
	Country   string          `json:"country"`
	MainPhoto string          `json:"main_photo"`
	Status    models.Status   `json:"status"`
}

type Page struct {
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	TotalItems  int           `json:"total_items"`
	Results     []ListingItem `json:"results"`
}

type ListingService struct {
	repo   repo.Repository
	now    func() time.Time
	logger *golog.Logger
}

func NewListingService(r repo.Repository, now func() time.Time, logger *golog.Logger) *ListingService {
	if now == nil {
		now = time.Now
	}
	return &ListingService{repo: r, now: now, logger: logger}
}

// List pushes the category, price and availability-window filters to the
// store, counts the matches and loads only the requested page in
// (created_at, id) order. Ledgers are read for the page's apartments alone.
// Pages past the end are empty, not errors.
func (s *ListingService) List(ctx context.Context, filter ListingFilter) (*Page, error) {
	window := filter.Start != nil && filter.End != nil
	if window && !filter.Start.Before(*filter.End) {
		return nil, newError(KindInvalidRange, "start must be before end")
	}

	query := repo.ApartmentFilter{
		Category: filter.Category,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
	}
	if window {
		query.FreeFrom, query.FreeUntil = filter.Start, filter.End
	}

	count, err := s.repo.CountApartments(ctx, query)
	if err != nil {
		s.logger.Errorf("count apartments: %v", err)
		return nil, fromStore(err, "apartment not found")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	total := int(count)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	results := []ListingItem{}
	if page <= totalPages && (page-1)*PageSize < total {
		query.Offset = (page - 1) * PageSize
		query.Limit = PageSize
		apartments, err := s.repo.ListApartments(ctx, query)
		if err != nil {
			s.logger.Errorf("list apartments: %v", err)
			return nil, fromStore(err, "apartment not found")
		}

		ids := make([]string, len(apartments))
		for i := range apartments {
			ids[i] = apartments[i].ID
		}
		ledgers, err := s.repo.UnavailabilitiesFor(ctx, ids)
		if err != nil {
			s.logger.Errorf("load ledgers: %v", err)
			return nil, fromStore(err, "apartment not found")
		}

		now := s.now()
		for _, apt := range apartments {
			results = append(results, ListingItem{
				ID:        apt.ID,
				Title:     apt.Title,
				Category:  apt.Category,
				Price:     apt.PricePerHour,
				City:      apt.City,
				Country:   apt.Country,
				MainPhoto: apt.MainPhoto,
				Status:    ComputeStatus(ledgers[apt.ID], now),
			})
		}
	}

	return &Page{
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalItems:  total,
		Results:     results,
	}, nil
}
