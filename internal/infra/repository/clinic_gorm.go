package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ClinicGormRepository struct {
	db *gorm.DB
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{db: db}
}

func (r *ClinicGormRepository) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Clinic, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.Clinic{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR city ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return []model.Clinic{}, 0, err
	}

	var items []model.Clinic
	offset := (q.Page - 1) * q.Limit
	if err := query.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Clinic{}, 0, err
	}

	return items, total, nil
}

func (r *ClinicGormRepository) FindByID(ctx context.Context, id int64) (model.Clinic, error) {
	var c model.Clinic
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Clinic{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Clinic{}, err
	}
	return c, nil
}

func (r *ClinicGormRepository) Create(ctx context.Context, c model.Clinic) (model.Clinic, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Clinic{}, err
	}
	return c, nil
}

func (r *ClinicGormRepository) Update(ctx context.Context, c model.Clinic) error {
	res := r.db.WithContext(ctx).Model(&model.Clinic{ID: c.ID}).
		Select("name", "description", "website", "line", "city", "state",
			"pincode", "landmark", "opening_time", "closing_time", "images").
		Updates(&c)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
