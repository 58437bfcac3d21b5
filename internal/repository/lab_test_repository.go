package repository

import (
	"app/internal/domain/model"
	"context"
)

type LabTestRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.LabTest, int64, error)
	FindByID(ctx context.Context, id int64) (model.LabTest, error)

	Create(ctx context.Context, t model.LabTest) (model.LabTest, error)
	Update(ctx context.Context, t model.LabTest) error
}
