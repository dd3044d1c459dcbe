package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type ReviewService struct {
	store repository.Store
}

func NewReviewService(store repository.Store) *ReviewService {
	return &ReviewService{store: store}
}

type ReviewInput struct {
	BookingID  uint
	Rating     int
	ReviewText string
}

// Create stores a tenant's review of a paid stay. Reviews wait for admin
// approval before they are listed publicly.
func (s *ReviewService) Create(ctx context.Context, actor Actor, in ReviewInput) (*models.Review, error) {
	const op = "reviews.create"

	if in.BookingID == 0 {
		return nil, validation(op, "booking_id is required")
	}
	if err := validateRating(op, in.Rating); err != nil {
		return nil, err
	}

	var r *models.Review
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.LockBooking(ctx, in.BookingID)
		if err != nil {
			return storeErr(op, "booking", err)
		}
		if actor.UserID != b.TenantID {
			return forbidden(op, "only the booking tenant can review this stay")
		}
		if !b.Status.PostPayment() {
			return invalidState(op, "only completed stays can be reviewed")
		}
		p, err := tx.GetProperty(ctx, b.PropertyID)
		if err != nil {
			return storeErr(op, "property", err)
		}

		r = &models.Review{
			BookingID:  b.ID,
			TenantID:   b.TenantID,
			PropertyID: b.PropertyID,
			LandlordID: p.LandlordID,
			Rating:     in.Rating,
			ReviewText: strings.TrimSpace(in.ReviewText),
		}
		if err := tx.CreateReview(ctx, r); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict(op, "this booking has already been reviewed")
			}
			return storeErr(op, "review", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Reply(ctx context.Context, actor Actor, id uint, reply string) (*models.Review, error) {
	const op = "reviews.reply"

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, validation(op, "reply is required")
	}
	r, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, storeErr(op, "review", err)
	}
	if actor.UserID != r.LandlordID {
		return nil, forbidden(op, "only the property landlord can reply")
	}

	r.LandlordReply = reply
	if err := s.store.UpdateReview(ctx, r); err != nil {
		return nil, storeErr(op, "review", err)
	}
	return r, nil
}

func (s *ReviewService) Approve(ctx context.Context, actor Actor, id uint) (*models.Review, error) {
	const op = "reviews.approve"

	if !actor.IsAdmin() {
		return nil, forbidden(op, "admin access required")
	}
	r, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, storeErr(op, "review", err)
	}
	if r.IsApproved {
		return r, nil
	}
	r.IsApproved = true
	if err := s.store.UpdateReview(ctx, r); err != nil {
		return nil, storeErr(op, "review", err)
	}
	return r, nil
}

// ListForProperty returns the approved reviews of a property.
func (s *ReviewService) ListForProperty(ctx context.Context, propertyID uint) ([]models.Review, error) {
	const op = "reviews.list"

	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return nil, storeErr(op, "property", err)
	}
	rs, err := s.store.ListReviews(ctx, repository.ReviewFilter{PropertyID: propertyID, ApprovedOnly: true})
	if err != nil {
		return nil, storeErr(op, "review", err)
	}
	return rs, nil
}
