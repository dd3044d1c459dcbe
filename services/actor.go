package services

import "github.com/sidhant-sriv/rentease-api/models"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uint
	Role   models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Is reports whether the actor is userID or an admin.
func (a Actor) Is(userID uint) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == userID)
}
