package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type LabTestGormRepository struct {
	db *gorm.DB
}

func NewLabTestGormRepository(db *gorm.DB) *LabTestGormRepository {
	return &LabTestGormRepository{db: db}
}

func (r *LabTestGormRepository) List(ctx context.Context, q repo.CatalogListQuery) ([]model.LabTest, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.LabTest{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return []model.LabTest{}, 0, err
	}

	var items []model.LabTest
	offset := (q.Page - 1) * q.Limit
	if err := query.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.LabTest{}, 0, err
	}

	return items, total, nil
}

func (r *LabTestGormRepository) FindByID(ctx context.Context, id int64) (model.LabTest, error) {
	var t model.LabTest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LabTest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LabTest{}, err
	}
	return t, nil
}

func (r *LabTestGormRepository) Create(ctx context.Context, t model.LabTest) (model.LabTest, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.LabTest{}, err
	}
	return t, nil
}

func (r *LabTestGormRepository) Update(ctx context.Context, t model.LabTest) error {
	res := r.db.WithContext(ctx).Model(&model.LabTest{ID: t.ID}).
		Select("clinic_id", "name", "description", "price", "images").
		Updates(&t)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
