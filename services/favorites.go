package services

import (
	"context"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type FavoriteService struct {
	store repository.Store
}

func NewFavoriteService(store repository.Store) *FavoriteService {
	return &FavoriteService{store: store}
}

// Add marks a property as a favorite. Adding twice is not an error.
func (s *FavoriteService) Add(ctx context.Context, actor Actor, propertyID uint) error {
	const op = "favorites.add"
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return storeErr(op, "property", err)
	}
	return storeErr(op, "favorite", s.store.AddFavorite(ctx, actor.UserID, propertyID))
}

// Remove is a no-op when the property is not a favorite.
func (s *FavoriteService) Remove(ctx context.Context, actor Actor, propertyID uint) error {
	return storeErr("favorites.remove", "favorite", s.store.RemoveFavorite(ctx, actor.UserID, propertyID))
}

func (s *FavoriteService) List(ctx context.Context, actor Actor) ([]models.Property, error) {
	props, err := s.store.ListFavorites(ctx, actor.UserID)
	if err != nil {
		return nil, storeErr("favorites.list", "favorite", err)
	}
	return props, nil
}
