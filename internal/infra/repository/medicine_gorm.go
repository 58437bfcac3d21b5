package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MedicineGormRepository struct {
	db *gorm.DB
}

// DI
func NewMedicineGormRepository(db *gorm.DB) *MedicineGormRepository {
	return &MedicineGormRepository{db: db}
}

func (r *MedicineGormRepository) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Medicine, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.Medicine{})

	//name/descriptionの部分一致
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return []model.Medicine{}, 0, err
	}

	var items []model.Medicine
	offset := (q.Page - 1) * q.Limit
	if err := query.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Medicine{}, 0, err
	}

	return items, total, nil
}

func (r *MedicineGormRepository) FindByID(ctx context.Context, id int64) (model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Medicine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Medicine{}, err
	}
	return m, nil
}

func (r *MedicineGormRepository) Create(ctx context.Context, m model.Medicine) (model.Medicine, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Medicine{}, err
	}
	return m, nil
}

func (r *MedicineGormRepository) Update(ctx context.Context, m model.Medicine) error {
	res := r.db.WithContext(ctx).Model(&model.Medicine{ID: m.ID}).
		Select("name", "description", "price", "strip_size", "images").
		Updates(&m)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MedicineGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Medicine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
