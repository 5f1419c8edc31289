package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/packtrip/internal/model"
	"github.com/and161185/packtrip/internal/repository"
)

// CatalogService exposes read-only inventory lookups.
type CatalogService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
}

type CatalogServiceImpl struct{ repo repository.CatalogRepository }

// NewCatalogService constructs CatalogService.
func NewCatalogService(repo repository.CatalogRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo}
}

func (s *CatalogServiceImpl) ListItems(ctx context.Context, userID uuid.UUID) ([]model.InventoryItem, error) {
	if err := validIDs(userID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, userID)
}

func (s *CatalogServiceImpl) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*model.InventoryItem, error) {
	if err := validIDs(userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.GetItem(ctx, userID, itemID)
}

func (s *CatalogServiceImpl) ListCategories(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	if err := validIDs(userID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, userID)
}
