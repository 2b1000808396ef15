package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionReported(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{ReportedStatusActive, ReportedStatusVerified, true},
		{ReportedStatusActive, ReportedStatusResolved, true},
		{ReportedStatusActive, ReportedStatusClosed, true},
		{ReportedStatusVerified, ReportedStatusResolved, true},
		{ReportedStatusVerified, ReportedStatusClosed, true},
		// resolved и closed терминальные
		{ReportedStatusResolved, ReportedStatusVerified, false},
		{ReportedStatusResolved, ReportedStatusActive, false},
		{ReportedStatusClosed, ReportedStatusActive, false},
		// назад в active дороги нет
		{ReportedStatusVerified, ReportedStatusActive, false},
		{"garbage", ReportedStatusResolved, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransitionReported(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionConcern(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{ConcernStatusPending, ConcernStatusInProgress, true},
		{ConcernStatusPending, ConcernStatusResolved, true},
		{ConcernStatusPending, ConcernStatusEscalated, true},
		{ConcernStatusInProgress, ConcernStatusResolved, true},
		{ConcernStatusInProgress, ConcernStatusEscalated, true},
		{ConcernStatusEscalated, ConcernStatusResolved, true},
		// resolved терминальный
		{ConcernStatusResolved, ConcernStatusEscalated, false},
		{ConcernStatusResolved, ConcernStatusPending, false},
		{ConcernStatusEscalated, ConcernStatusInProgress, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransitionConcern(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDonatedItemStatus(t *testing.T) {
	item := DonatedItem{}
	assert.Equal(t, DonationStatusAvailable, item.Status())

	claimer := uuid.New()
	item.ClaimedByID = &claimer
	assert.Equal(t, DonationStatusClaimed, item.Status())

	now := time.Now()
	item.ClaimedDate = &now
	assert.Equal(t, DonationStatusCompleted, item.Status())

	// Возврат администратора: оба поля очищены.
	item.ClaimedByID = nil
	item.ClaimedDate = nil
	assert.Equal(t, DonationStatusAvailable, item.Status())
}

func TestReportedItemClearInapplicableGroup(t *testing.T) {
	loc := "library"
	date := "2025-02-10"
	found := ReportedItem{
		ItemType:        ReportedTypeFound,
		LocationLost:    &loc,
		DateLost:        &date,
		LocationFound:   &loc,
		CurrentLocation: &loc,
	}
	found.ClearInapplicableGroup()
	assert.Nil(t, found.LocationLost)
	assert.Nil(t, found.DateLost)
	assert.Nil(t, found.TimeLost)
	assert.NotNil(t, found.LocationFound)
	assert.NotNil(t, found.CurrentLocation)

	lost := ReportedItem{
		ItemType:      ReportedTypeLost,
		LocationLost:  &loc,
		LocationFound: &loc,
		DateFound:     &date,
	}
	lost.ClearInapplicableGroup()
	assert.NotNil(t, lost.LocationLost)
	assert.Nil(t, lost.LocationFound)
	assert.Nil(t, lost.DateFound)
	assert.Nil(t, lost.CurrentLocation)
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("admin"))
	assert.True(t, IsAdminRole("ADMIN"))
	assert.True(t, IsAdminRole(RoleAdministrator))
	assert.False(t, IsAdminRole(RoleUser))
	assert.False(t, IsAdminRole(RoleDeleted))
	assert.False(t, IsAdminRole(""))
}
