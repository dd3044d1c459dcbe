package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/sidhant-sriv/rentease-api/db"
	"github.com/sidhant-sriv/rentease-api/db/dbtest"
	"github.com/sidhant-sriv/rentease-api/logger"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/reports"
	"github.com/sidhant-sriv/rentease-api/repository"
	"github.com/sidhant-sriv/rentease-api/services"
)

type mapCache struct {
	data   map[string][]byte
	sets   int
	getErr error
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	m.data[key] = val
	m.sets++
	return nil
}

type seeded struct {
	store    *repository.GormStore
	reporter func(reports.Cache) *reports.Reporter
	landlord uint
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	gdb := dbtest.New(t)
	store := repository.NewGormStore(gdb)

	landlord := &models.User{Name: "L", Email: "l@x.com", PasswordHash: "h", Role: models.RoleLandlord}
	tenant := &models.User{Name: "T", Email: "t@x.com", PasswordHash: "h", Role: models.RoleTenant}
	require.NoError(t, store.CreateUser(ctx, landlord))
	require.NoError(t, store.CreateUser(ctx, tenant))

	open := &models.Property{Title: "A", Description: "d", RentPrice: 100, Location: "x", LandlordID: landlord.ID, Available: true}
	closed := &models.Property{Title: "B", Description: "d", RentPrice: 200, Location: "y", LandlordID: landlord.ID, Available: false}
	require.NoError(t, store.CreateProperty(ctx, open))
	require.NoError(t, store.CreateProperty(ctx, closed))

	day := datatypes.Date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	statuses := []models.BookingStatus{models.BookingActive, models.BookingPaid, models.BookingPending}
	for i, st := range statuses {
		b := &models.Booking{TenantID: tenant.ID, PropertyID: open.ID, StartDate: day, EndDate: day, Status: st}
		require.NoError(t, store.CreateBooking(ctx, b))

		pay := &models.Payment{
			BookingID: b.ID, TenantID: tenant.ID, LandlordID: landlord.ID,
			Amount: 1000.50, PaymentMethod: models.MethodCreditCard, Status: models.PaymentCompleted,
			TransactionID: services.NewTransactionID(time.Now()),
		}
		if i == 2 {
			pay.Status = models.PaymentRefunded
		}
		require.NoError(t, store.CreatePayment(ctx, pay))
	}

	sx, err := db.SQLX(gdb)
	require.NoError(t, err)
	return seeded{
		store: store,
		reporter: func(c reports.Cache) *reports.Reporter {
			return reports.New(sx, c, time.Minute, logger.Discard())
		},
		landlord: landlord.ID,
	}
}

func TestStats(t *testing.T) {
	s := seed(t)

	got, err := s.reporter(nil).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reports.Stats{
		TotalUsers:          2,
		TotalProperties:     2,
		AvailableProperties: 1,
		TotalBookings:       3,
		ActiveBookings:      2,
		TotalRevenue:        2001,
	}, got)
}

func TestStatsCached(t *testing.T) {
	s := seed(t)
	cache := &mapCache{data: map[string][]byte{}}
	r := s.reporter(cache)

	first, err := r.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, s.store.CreateUser(context.Background(), &models.User{Name: "N", Email: "n@x.com", PasswordHash: "h", Role: models.RoleTenant}))

	second, err := r.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second, "served from cache")
	assert.Equal(t, 1, cache.sets)

	fresh, err := s.reporter(&mapCache{data: map[string][]byte{}, getErr: errors.New("redis down")}).Stats(context.Background())
	require.NoError(t, err, "cache errors fall through")
	assert.EqualValues(t, 3, fresh.TotalUsers)
}

func TestEarnings(t *testing.T) {
	s := seed(t)
	r := s.reporter(nil)
	landlord := services.Actor{UserID: s.landlord, Role: models.RoleLandlord}

	e, err := r.Earnings(context.Background(), landlord, 0)
	require.NoError(t, err)
	assert.Equal(t, s.landlord, e.LandlordID)
	assert.EqualValues(t, 2, e.Payments)
	assert.InDelta(t, 2001.0, e.Total, 0.001)

	_, err = r.Earnings(context.Background(), services.Actor{UserID: 999, Role: models.RoleLandlord}, s.landlord)
	assert.True(t, services.IsKind(err, services.KindForbidden))

	admin := services.Actor{UserID: 1000, Role: models.RoleAdmin}
	e, err = r.Earnings(context.Background(), admin, 12345)
	require.NoError(t, err)
	assert.EqualValues(t, 0, e.Payments)
	assert.Zero(t, e.Total)
}
