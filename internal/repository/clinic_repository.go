package repository

import (
	"app/internal/domain/model"
	"context"
)

type ClinicRepository interface {
	List(ctx context.Context, q CatalogListQuery) ([]model.Clinic, int64, error)
	FindByID(ctx context.Context, id int64) (model.Clinic, error)

	Create(ctx context.Context, c model.Clinic) (model.Clinic, error)
	Update(ctx context.Context, c model.Clinic) error
}
