package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/models"
)

type stubProductStore struct {
	candidates    []models.ProductCandidate
	candidatesErr error
	descriptions  map[string]string
	descErr       error
	existing      map[string]bool
	existsErr     error
	insertErr     error

	inserted []*models.ProductHomologation
}

func (s *stubProductStore) SelectCandidates(_ context.Context, _ []int64) ([]models.ProductCandidate, error) {
	return s.candidates, s.candidatesErr
}

func (s *stubProductStore) Descriptions(_ context.Context, _ []string) (map[string]string, error) {
	return s.descriptions, s.descErr
}

func (s *stubProductStore) Exists(_ context.Context, countryID int64, productCode string, groupID int64) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	key := existsKey(countryID, productCode, groupID)
	return s.existing[key], nil
}

func (s *stubProductStore) Insert(_ context.Context, h *models.ProductHomologation) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, h)
	return nil
}

func existsKey(countryID int64, code string, groupID int64) string {
	return fmt.Sprintf("%d|%s|%d", countryID, code, groupID)
}

type stubWeekCalendar struct {
	starts map[int]time.Time
	err    error
	calls  [][2]int
}

func (s *stubWeekCalendar) WeekStart(_ context.Context, year, week int) (*time.Time, error) {
	s.calls = append(s.calls, [2]int{year, week})
	if s.err != nil {
		return nil, s.err
	}
	if start, ok := s.starts[year*100+week]; ok {
		return &start, nil
	}
	return nil, nil
}

func int64Ptr(v int64) *int64 { return &v }

func productCandidate(id int64) models.ProductCandidate {
	return models.ProductCandidate{
		RejectionID: id,
		CountryID:   52,
		ProductCode: strPtr("COD-1"),
		GroupID:     9,
		ProductID:   strPtr("PRO-77"),
		Barcode:     strPtr("750100012345"),
		WeekCode:    int64Ptr(202612),
	}
}

func TestProductHomologationServiceDeriveInserts(t *testing.T) {
	weekStart := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	store := &stubProductStore{
		candidates:   []models.ProductCandidate{productCandidate(1)},
		descriptions: map[string]string{"PRO-77": "Shampoo Tío Nacho 415ml"},
	}
	weeks := &stubWeekCalendar{starts: map[int]time.Time{202612: weekStart}}

	fixed := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	svc := NewProductHomologationService(store, weeks, nil).
		WithClock(func() time.Time { return fixed })

	result := svc.Derive(context.Background(), []int64{1})

	require.Equal(t, 1, result.Total)
	require.Equal(t, 1, result.Inserted)
	require.Zero(t, result.Duplicated)
	require.Zero(t, result.Failed)
	require.Empty(t, result.Errors)

	require.Len(t, store.inserted, 1)
	h := store.inserted[0]
	require.Equal(t, "Shampoo Tío Nacho 415ml", h.Description)
	require.Equal(t, "COD-1", h.ProductCode)
	require.True(t, h.Active)
	require.Equal(t, fixed, h.CreatedAt)
	require.Equal(t, fixed, h.UpdatedAt)
	require.NotNil(t, h.ValidFrom)
	require.True(t, h.ValidFrom.Equal(weekStart))
	require.Equal(t, models.HomologationValidUntil, h.ValidUntil)
	require.Equal(t, [][2]int{{2026, 12}}, weeks.calls)

	require.Len(t, result.InsertedDetails, 1)
	require.Equal(t, int64(1), result.InsertedDetails[0].RejectionID)
}

func TestProductHomologationServiceDeriveSkipsDuplicates(t *testing.T) {
	store := &stubProductStore{
		candidates: []models.ProductCandidate{productCandidate(1), productCandidate(2)},
		existing:   map[string]bool{existsKey(52, "COD-1", 9): true},
	}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{1, 2})

	require.Equal(t, 2, result.Total)
	require.Zero(t, result.Inserted)
	require.Equal(t, 2, result.Duplicated)
	require.Empty(t, store.inserted)
	require.Len(t, result.Duplicates, 2)
	require.Equal(t, int64(2), result.Duplicates[1].RejectionID)
}

func TestProductHomologationServiceDeriveDefaultsDescription(t *testing.T) {
	unnamed := productCandidate(1)
	unnamed.ProductID = strPtr("PRO-99")
	store := &stubProductStore{
		candidates:   []models.ProductCandidate{unnamed},
		descriptions: map[string]string{"PRO-77": "otro"},
	}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{1})

	require.Equal(t, 1, result.Inserted)
	require.Equal(t, models.DefaultProductDescription, store.inserted[0].Description)
}

func TestProductHomologationServiceDeriveDescriptionLookupFailureDegrades(t *testing.T) {
	store := &stubProductStore{
		candidates: []models.ProductCandidate{productCandidate(1)},
		descErr:    errors.New("vista no disponible"),
	}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{1})

	require.Equal(t, 1, result.Inserted)
	require.Zero(t, result.Failed)
	require.Equal(t, models.DefaultProductDescription, store.inserted[0].Description)
}

func TestProductHomologationServiceDeriveUnresolvedWeekLeavesValidFromNull(t *testing.T) {
	store := &stubProductStore{
		candidates: []models.ProductCandidate{productCandidate(1)},
	}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{1})

	require.Equal(t, 1, result.Inserted)
	require.Nil(t, store.inserted[0].ValidFrom)
}

func TestProductHomologationServiceDeriveCandidateFailureIsGeneral(t *testing.T) {
	store := &stubProductStore{candidatesErr: errors.New("tabla bloqueada")}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{1})

	require.Zero(t, result.Total)
	require.Equal(t, []string{"Error general: tabla bloqueada"}, result.Errors)
}

func TestProductHomologationServiceDeriveInsertFailureIsIsolated(t *testing.T) {
	store := &stubProductStore{
		candidates: []models.ProductCandidate{productCandidate(7)},
		insertErr:  errors.New("violación de restricción"),
	}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), []int64{7})

	require.Equal(t, 1, result.Failed)
	require.Zero(t, result.Inserted)
	require.Equal(t, []string{"RECHAZOID 7: violación de restricción"}, result.Errors)
}

func TestProductHomologationServiceDeriveEmptyIDs(t *testing.T) {
	store := &stubProductStore{candidatesErr: errors.New("should not be called")}
	svc := NewProductHomologationService(store, &stubWeekCalendar{}, nil)

	result := svc.Derive(context.Background(), nil)

	require.Zero(t, result.Total)
	require.Empty(t, result.Errors)
}
