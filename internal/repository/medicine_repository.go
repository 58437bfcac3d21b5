package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// カタログの一覧検索
type CatalogListQuery struct {
	Page  int
	Limit int
	//name/descriptionの部分一致
	Q string
}

// 医薬品の永続化（保存・取得）だけを約束。
type MedicineRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Medicine, int64, error)
	FindByID(ctx context.Context, id int64) (model.Medicine, error)

	Create(ctx context.Context, m model.Medicine) (model.Medicine, error)
	Update(ctx context.Context, m model.Medicine) error
	SoftDelete(ctx context.Context, id int64) error
}
