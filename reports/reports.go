// Package reports computes read-only aggregates over the rental data with
// hand-written SQL.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/services"
)

const statsKey = "rentease:stats"

type Stats struct {
	TotalUsers          int64   `db:"total_users" json:"total_users"`
	TotalProperties     int64   `db:"total_properties" json:"total_properties"`
	AvailableProperties int64   `db:"available_properties" json:"available_properties"`
	TotalBookings       int64   `db:"total_bookings" json:"total_bookings"`
	ActiveBookings      int64   `db:"active_bookings" json:"active_bookings"`
	TotalRevenue        float64 `db:"total_revenue" json:"total_revenue"`
}

type Earnings struct {
	LandlordID uint    `db:"-" json:"landlord_id"`
	Payments   int64   `db:"payments" json:"completed_payments"`
	Total      float64 `db:"total" json:"total_earnings"`
}

// Cache stores encoded reports for a while. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type Reporter struct {
	db    *sqlx.DB
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New returns a Reporter. cache may be nil, in which case every call hits
// the database.
func New(db *sqlx.DB, cache Cache, ttl time.Duration, log *slog.Logger) *Reporter {
	return &Reporter{db: db, cache: cache, ttl: ttl, log: log}
}

const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM properties) AS total_properties,
		(SELECT COUNT(*) FROM properties WHERE available = ?) AS available_properties,
		(SELECT COUNT(*) FROM bookings) AS total_bookings,
		(SELECT COUNT(*) FROM bookings WHERE status IN (?, ?)) AS active_bookings,
		(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = ?) AS total_revenue
`

// Stats returns platform-wide counters. Cache failures are logged and
// fall through to the database.
func (r *Reporter) Stats(ctx context.Context) (Stats, error) {
	if r.cache != nil {
		raw, ok, err := r.cache.Get(ctx, statsKey)
		switch {
		case err != nil:
			r.log.Warn("stats.cache_get_failed", "error", err)
		case ok:
			var s Stats
			if err := json.Unmarshal(raw, &s); err == nil {
				return s, nil
			}
		}
	}

	var s Stats
	err := r.db.GetContext(ctx, &s, r.db.Rebind(statsQuery),
		true, models.BookingActive, models.BookingPaid, models.PaymentCompleted)
	if err != nil {
		return Stats{}, &services.Error{Op: "reports.stats", Kind: services.KindInternal, Msg: "failed to compute stats", Err: err}
	}

	if r.cache != nil {
		raw, _ := json.Marshal(s)
		if err := r.cache.Set(ctx, statsKey, raw, r.ttl); err != nil {
			r.log.Warn("stats.cache_set_failed", "error", err)
		}
	}
	return s, nil
}

const earningsQuery = `
	SELECT COUNT(*) AS payments, COALESCE(SUM(amount), 0) AS total
	FROM payments
	WHERE landlord_id = ? AND status = ?
`

// Earnings sums the completed payments received by a landlord. landlordID 0
// means the caller.
func (r *Reporter) Earnings(ctx context.Context, actor services.Actor, landlordID uint) (Earnings, error) {
	const op = "reports.earnings"

	if landlordID == 0 {
		landlordID = actor.UserID
	}
	if !actor.Is(landlordID) {
		return Earnings{}, &services.Error{Op: op, Kind: services.KindForbidden, Msg: "you can only view your own earnings"}
	}

	e := Earnings{LandlordID: landlordID}
	if err := r.db.GetContext(ctx, &e, r.db.Rebind(earningsQuery), landlordID, models.PaymentCompleted); err != nil {
		return Earnings{}, &services.Error{Op: op, Kind: services.KindInternal, Msg: "failed to compute earnings", Err: fmt.Errorf("landlord %d: %w", landlordID, err)}
	}
	return e, nil
}
