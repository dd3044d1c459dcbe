package services

import (
	"strings"
	"time"

	"github.com/sidhant-sriv/rentease-api/models"
)

const dateLayout = "2006-01-02"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(op, email string) error {
	if email == "" {
		return validation(op, "email is required")
	}
	if !strings.Contains(email, "@") {
		return validation(op, "email must contain @")
	}
	return nil
}

func validatePassword(op, password string) error {
	if strings.TrimSpace(password) == "" {
		return validation(op, "password is required")
	}
	return nil
}

// validateListing checks the fields every property must carry.
func validateListing(op string, p *models.Property) error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return validation(op, "title is required")
	case strings.TrimSpace(p.Description) == "":
		return validation(op, "description is required")
	case strings.TrimSpace(p.Location) == "":
		return validation(op, "location is required")
	case p.RentPrice <= 0:
		return validation(op, "rent_price must be greater than 0")
	}
	return nil
}

func validateRating(op string, rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return validation(op, "rating must be between 1 and 5")
	}
	return nil
}

// parseStay parses a YYYY-MM-DD date range; end must fall after start.
func parseStay(op, start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, validation(op, "start_date and end_date are required")
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, validation(op, "invalid start_date format. Use YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, validation(op, "invalid end_date format. Use YYYY-MM-DD")
	}
	if !e.After(s) {
		return time.Time{}, time.Time{}, validation(op, "end_date must be after start_date")
	}
	return s, e, nil
}
