package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainpantry "github.com/larderai/pantry/internal/domain/pantry"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// PantryRepository implements outbound.PantryRepository over supplies.
type PantryRepository struct {
	db *gorm.DB
}

func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

func (p *PantryRepository) List(ctx context.Context) ([]domainpantry.Item, error) {
	var models []SupplyModel
	if err := p.db.WithContext(ctx).Order("sort_order ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "listing pantry")
	}
	out := make([]domainpantry.Item, len(models))
	for i, m := range models {
		out[i] = modelToItem(m)
	}
	return out, nil
}

func (p *PantryRepository) Upsert(ctx context.Context, item domainpantry.Item) error {
	model := itemToModel(item)
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return apperrors.Wrap(err, "upserting pantry item")
	}
	return nil
}

func (p *PantryRepository) UpsertBatch(ctx context.Context, items []domainpantry.Item) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]SupplyModel, len(items))
	for i, it := range items {
		models[i] = itemToModel(it)
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&models).Error
	if err != nil {
		return apperrors.Wrap(err, "upserting pantry batch")
	}
	return nil
}

// UpdateOrder rewrites sort_order to match the position of each name in
// orderedNames, inside one transaction.
func (p *PantryRepository) UpdateOrder(ctx context.Context, orderedNames []string) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, name := range orderedNames {
			if err := tx.Model(&SupplyModel{}).Where("name = ?", name).Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "reordering pantry")
	}
	return nil
}

func (p *PantryRepository) Delete(ctx context.Context, name string) error {
	result := p.db.WithContext(ctx).Where("name = ?", name).Delete(&SupplyModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "deleting pantry item")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("pantry item")
	}
	return nil
}
