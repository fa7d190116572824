// Package pantry implements the application layer behind the /fridge
// endpoints: thin CRUD orchestration over the Relational Store's supplies
// table, with no cookability logic of its own (that lives in
// internal/application/cookability).
package pantry

import (
	"context"

	"go.uber.org/zap"

	domainpantry "github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/ports/inbound"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// Service implements inbound.PantryService.
type Service struct {
	repo   outbound.PantryRepository
	logger *zap.Logger
}

func NewService(repo outbound.PantryRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("pantry-service")}
}

func (s *Service) List(ctx context.Context) ([]domainpantry.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "listing pantry")
	}
	return items, nil
}

// Add upserts a named item, defaulting count to 1 and appending it to the
// end of the declared order (spec.md §6, POST /fridge/{item}?count=N).
func (s *Service) Add(ctx context.Context, name string, count int) error {
	if name == "" {
		return apperrors.NewInvalidArgument("item name is required")
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return apperrors.Wrap(err, "listing pantry")
	}
	item, err := domainpantry.NewItem(name, count, len(items))
	if err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return apperrors.Wrap(err, "upserting pantry item")
	}
	return nil
}

// SetCount overwrites an item's quantity, preserving its existing sort
// position (spec.md §6, PUT /fridge/{item}).
func (s *Service) SetCount(ctx context.Context, name string, count int) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return apperrors.Wrap(err, "listing pantry")
	}
	sortOrder := len(items)
	for _, existing := range items {
		if existing.Name == name {
			sortOrder = existing.SortOrder
			break
		}
	}
	item, err := domainpantry.NewItem(name, count, sortOrder)
	if err != nil {
		return apperrors.NewInvalidArgument(err.Error())
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return apperrors.Wrap(err, "upserting pantry item")
	}
	return nil
}

// ReplaceAll overwrites the entire pantry in one batch, the bulk PUT /fridge
// path (spec.md §6).
func (s *Service) ReplaceAll(ctx context.Context, supplies []inbound.PantrySupply) error {
	items := make([]domainpantry.Item, 0, len(supplies))
	for i, sup := range supplies {
		sortOrder := sup.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		item, err := domainpantry.NewItem(sup.Name, sup.Quantity, sortOrder)
		if err != nil {
			return apperrors.NewInvalidArgument(err.Error())
		}
		items = append(items, item)
	}
	if err := s.repo.UpsertBatch(ctx, items); err != nil {
		return apperrors.Wrap(err, "replacing pantry")
	}
	return nil
}

// Reorder updates sort positions only, the PUT /fridge/order path.
func (s *Service) Reorder(ctx context.Context, orderedNames []string) error {
	if err := s.repo.UpdateOrder(ctx, orderedNames); err != nil {
		return apperrors.Wrap(err, "reordering pantry")
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return apperrors.Wrap(err, "removing pantry item")
	}
	return nil
}
