package services

import (
	"context"
	"fmt"
	"testing"

	"checkin-server/mocks"
	"checkin-server/models"
	"checkin-server/repo"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_LoadsOnlyTheRequestedPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRepository(ctrl)
	minPrice := 20.0
	base := repo.ApartmentFilter{Category: models.CategoryRoom, MinPrice: &minPrice}

	pageRows := make([]models.Apartment, 5)
	ids := make([]string, 5)
	for i := range pageRows {
		ids[i] = fmt.Sprintf("apt-%d", 20+i)
		pageRows[i] = models.Apartment{ID: ids[i], Category: models.CategoryRoom}
	}

	paged := base
	paged.Offset, paged.Limit = 20, PageSize
	gomock.InOrder(
		store.EXPECT().CountApartments(gomock.Any(), base).Return(int64(25), nil),
		store.EXPECT().ListApartments(gomock.Any(), paged).Return(pageRows, nil),
		store.EXPECT().UnavailabilitiesFor(gomock.Any(), ids).Return(map[string][]models.Unavailability{
			"apt-21": {{ApartmentID: "apt-21", Start: hourOn(1, 9, 0), End: hourOn(1, 12, 0)}},
		}, nil),
	)

	svc := NewListingService(store, fixedClock(hourOn(1, 10, 0)), testLogger())
	page, err := svc.List(context.Background(), ListingFilter{Category: models.CategoryRoom, MinPrice: &minPrice, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Results, 5)
	assert.Equal(t, models.StatusAvailable, page.Results[0].Status)
	assert.Equal(t, models.StatusUnavailable, page.Results[1].Status)
}

func TestList_PageOutOfRangeSkipsTheRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRepository(ctrl)
	store.EXPECT().CountApartments(gomock.Any(), repo.ApartmentFilter{}).Return(int64(3), nil)

	svc := NewListingService(store, nil, testLogger())
	page, err := svc.List(context.Background(), ListingFilter{Page: 4})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.TotalPages)
}

func TestList_WindowIsPushedToTheStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRepository(ctrl)
	start, end := hourOn(2, 11, 0), hourOn(2, 13, 0)
	want := repo.ApartmentFilter{FreeFrom: &start, FreeUntil: &end}
	store.EXPECT().CountApartments(gomock.Any(), want).Return(int64(0), nil)

	svc := NewListingService(store, nil, testLogger())
	page, err := svc.List(context.Background(), ListingFilter{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Zero(t, page.TotalItems)
}
