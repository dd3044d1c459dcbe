package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/sidhant-sriv/rentease-api/db/dbtest"
	"github.com/sidhant-sriv/rentease-api/logger"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
	"github.com/sidhant-sriv/rentease-api/services"
)

// recorder is a Notifier that keeps every notice in memory.
type recorder struct {
	mu      sync.Mutex
	notices []services.Notice
}

func (r *recorder) Notify(_ context.Context, n services.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) last() services.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return services.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

type env struct {
	ctx       context.Context
	store     *repository.GormStore
	notices   *recorder
	tokens    *services.TokenIssuer
	users     *services.UserService
	props     *services.PropertyService
	bookings  *services.BookingService
	payments  *services.PaymentService
	reviews   *services.ReviewService
	favorites *services.FavoriteService

	admin    services.Actor
	landlord services.Actor
	tenant   services.Actor
	other    services.Actor
	property *models.Property
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := repository.NewGormStore(dbtest.New(t))
	rec := &recorder{}
	log := logger.Discard()
	tokens := services.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)

	e := &env{
		ctx:       ctx,
		store:     store,
		notices:   rec,
		tokens:    tokens,
		users:     services.NewUserService(store, tokens, rec, log),
		props:     services.NewPropertyService(store),
		bookings:  services.NewBookingService(store, rec, log),
		payments:  services.NewPaymentService(store, rec, log),
		reviews:   services.NewReviewService(store),
		favorites: services.NewFavoriteService(store),
	}
	e.admin = e.seedUser(t, "Admin", "admin@rentease.com", models.RoleAdmin)
	e.landlord = e.seedUser(t, "Jeremy", "jeremy@example.com", models.RoleLandlord)
	e.tenant = e.seedUser(t, "Esther", "esther@example.com", models.RoleTenant)
	e.other = e.seedUser(t, "Mark", "mark@example.com", models.RoleTenant)

	e.property = &models.Property{
		Title:       "Westlands flat",
		Description: "Two bedrooms near Sarit",
		RentPrice:   45000,
		Location:    "Westlands, Nairobi",
		LandlordID:  e.landlord.UserID,
		Available:   true,
	}
	require.NoError(t, store.CreateProperty(ctx, e.property))
	return e
}

func (e *env) seedUser(t *testing.T, name, email string, role models.Role) services.Actor {
	t.Helper()
	u := &models.User{Name: name, Email: email, PasswordHash: "unused", Role: role}
	require.NoError(t, e.store.CreateUser(e.ctx, u))
	return services.Actor{UserID: u.ID, Role: role}
}

// seedBooking inserts a booking directly, skipping the service rules.
func (e *env) seedBooking(t *testing.T, tenant services.Actor, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{
		TenantID:   tenant.UserID,
		PropertyID: e.property.ID,
		StartDate:  datatypes.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:    datatypes.Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		Status:     status,
	}
	require.NoError(t, e.store.CreateBooking(e.ctx, b))
	return b
}

func (e *env) book(t *testing.T) *models.Booking {
	t.Helper()
	b, err := e.bookings.Create(e.ctx, e.tenant, services.BookingInput{
		TenantID:   e.tenant.UserID,
		PropertyID: e.property.ID,
		StartDate:  "2024-03-01",
		EndDate:    "2024-06-01",
	})
	require.NoError(t, err)
	return b
}

func kind(err error) services.Kind {
	if err == nil {
		return ""
	}
	return services.KindOf(err)
}
