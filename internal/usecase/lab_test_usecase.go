package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

type LabTestOutput struct {
	ID          int64    `json:"id"`
	ClinicID    *int64   `json:"clinicId,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
	// 予約可能な時間枠（固定）
	TimeSlots []string `json:"timeSlots"`
}

type CreateLabTestInput struct {
	ClinicID    *int64   `json:"clinicId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Images      []string `json:"images"`
}

type LabTestPatch struct {
	ClinicID    *int64    `json:"clinicId"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price"`
	Images      *[]string `json:"images"`
}

type LabTestListOutput struct {
	Items []LabTestOutput `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

type LabTestUsecase struct {
	labTestRepo repository.LabTestRepository
	clinicRepo  repository.ClinicRepository
}

func NewLabTestUsecase(tr repository.LabTestRepository, cr repository.ClinicRepository) *LabTestUsecase {
	return &LabTestUsecase{labTestRepo: tr, clinicRepo: cr}
}

func toLabTestOutput(t model.LabTest) LabTestOutput {
	return LabTestOutput{
		ID:          t.ID,
		ClinicID:    t.ClinicID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price,
		Images:      t.Images,
		TimeSlots:   model.TimeSlots,
	}
}

func (u *LabTestUsecase) List(ctx context.Context, q repository.CatalogListQuery) (LabTestListOutput, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	list, total, err := u.labTestRepo.List(ctx, q)
	if err != nil {
		return LabTestListOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to list tests")
	}
	out := LabTestListOutput{Items: make([]LabTestOutput, 0, len(list)), Page: q.Page, Limit: q.Limit, Total: total}
	for _, t := range list {
		out.Items = append(out.Items, toLabTestOutput(t))
	}
	return out, nil
}

func (u *LabTestUsecase) Get(ctx context.Context, id int64) (LabTestOutput, error) {
	t, err := u.labTestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LabTestOutput{}, NewHTTPError(http.StatusNotFound, "test not found")
		}
		return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch test")
	}
	return toLabTestOutput(t), nil
}

func (u *LabTestUsecase) Create(ctx context.Context, in CreateLabTestInput) (LabTestOutput, error) {
	if in.Name == "" || in.Price <= 0 {
		return LabTestOutput{}, NewHTTPError(http.StatusBadRequest, "name and positive price are required")
	}
	if in.ClinicID != nil {
		if _, err := u.clinicRepo.FindByID(ctx, *in.ClinicID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return LabTestOutput{}, NewHTTPError(http.StatusNotFound, "clinic not found")
			}
			return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch clinic")
		}
	}
	created, err := u.labTestRepo.Create(ctx, model.LabTest{
		ClinicID:    in.ClinicID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
	})
	if err != nil {
		return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create test")
	}
	return toLabTestOutput(created), nil
}

func (u *LabTestUsecase) Update(ctx context.Context, id int64, p LabTestPatch) (LabTestOutput, error) {
	t, err := u.labTestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LabTestOutput{}, NewHTTPError(http.StatusNotFound, "test not found")
		}
		return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch test")
	}
	if p.ClinicID != nil {
		if _, err := u.clinicRepo.FindByID(ctx, *p.ClinicID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return LabTestOutput{}, NewHTTPError(http.StatusNotFound, "clinic not found")
			}
			return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch clinic")
		}
		t.ClinicID = p.ClinicID
	}
	if p.Name != nil {
		if *p.Name == "" {
			return LabTestOutput{}, NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Price != nil {
		if *p.Price <= 0 {
			return LabTestOutput{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		t.Price = *p.Price
	}
	if p.Images != nil {
		t.Images = *p.Images
	}
	if err := u.labTestRepo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LabTestOutput{}, NewHTTPError(http.StatusNotFound, "test not found")
		}
		return LabTestOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update test")
	}
	return toLabTestOutput(t), nil
}
