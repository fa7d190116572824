package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainingredient "github.com/larderai/pantry/internal/domain/ingredient"
	"github.com/larderai/pantry/internal/ports/outbound"
	apperrors "github.com/larderai/pantry/pkg/errors"
)

// AliasRepository implements outbound.AliasRepository over ingredient_aliases.
type AliasRepository struct {
	db *gorm.DB
}

func NewAliasRepository(db *gorm.DB) outbound.AliasRepository {
	return &AliasRepository{db: db}
}

// FindCanonical returns the highest-confidence alias record for alias,
// ties broken by most recent CreatedAt.
func (a *AliasRepository) FindCanonical(ctx context.Context, alias string) (*domainingredient.AliasRecord, error) {
	var model IngredientAliasModel
	err := a.db.WithContext(ctx).
		Where("alias = ?", alias).
		Order("confidence DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "finding canonical alias")
	}
	rec := modelToAlias(model)
	return &rec, nil
}

// IsCanonical reports whether token has a self-aliased record.
func (a *AliasRepository) IsCanonical(ctx context.Context, token string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&IngredientAliasModel{}).
		Where("canonical_name = ? AND alias = ?", token, token).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "checking canonical token")
	}
	return count > 0, nil
}

func (a *AliasRepository) Upsert(ctx context.Context, rec domainingredient.AliasRecord) error {
	model := aliasToModel(rec)
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "canonical_name"}, {Name: "alias"}},
		UpdateAll: true,
	}).Create(&model).Error
	if err != nil {
		return apperrors.Wrap(err, "upserting alias")
	}
	return nil
}

func (a *AliasRepository) UpsertBatch(ctx context.Context, recs []domainingredient.AliasRecord) error {
	if len(recs) == 0 {
		return nil
	}
	models := make([]IngredientAliasModel, len(recs))
	for i, rec := range recs {
		models[i] = aliasToModel(rec)
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "canonical_name"}, {Name: "alias"}},
		UpdateAll: true,
	}).Create(&models).Error
	if err != nil {
		return apperrors.Wrap(err, "upserting alias batch")
	}
	return nil
}

func (a *AliasRepository) ListForCanonical(ctx context.Context, canonical string) ([]domainingredient.AliasRecord, error) {
	var models []IngredientAliasModel
	if err := a.db.WithContext(ctx).Where("canonical_name = ?", canonical).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "listing aliases for canonical")
	}
	out := make([]domainingredient.AliasRecord, len(models))
	for i, m := range models {
		out[i] = modelToAlias(m)
	}
	return out, nil
}
