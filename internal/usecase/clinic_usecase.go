package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

type ClinicOutput struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     string   `json:"website,omitempty"`
	Line        string   `json:"line"`
	City        string   `json:"city"`
	State       string   `json:"state,omitempty"`
	Pincode     string   `json:"pincode,omitempty"`
	Landmark    string   `json:"landmark,omitempty"`
	OpeningTime string   `json:"openingTime,omitempty"`
	ClosingTime string   `json:"closingTime,omitempty"`
	Images      []string `json:"images"`
}

type CreateClinicInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Website     string   `json:"website"`
	Line        string   `json:"line"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Pincode     string   `json:"pincode"`
	Landmark    string   `json:"landmark"`
	OpeningTime string   `json:"openingTime"`
	ClosingTime string   `json:"closingTime"`
	Images      []string `json:"images"`
}

type ClinicPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Website     *string   `json:"website"`
	Line        *string   `json:"line"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	Pincode     *string   `json:"pincode"`
	Landmark    *string   `json:"landmark"`
	OpeningTime *string   `json:"openingTime"`
	ClosingTime *string   `json:"closingTime"`
	Images      *[]string `json:"images"`
}

type ClinicListOutput struct {
	Items []ClinicOutput `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

type ClinicUsecase struct {
	clinicRepo repository.ClinicRepository
}

func NewClinicUsecase(cr repository.ClinicRepository) *ClinicUsecase {
	return &ClinicUsecase{clinicRepo: cr}
}

func toClinicOutput(c model.Clinic) ClinicOutput {
	return ClinicOutput{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Line:        c.Line,
		City:        c.City,
		State:       c.State,
		Pincode:     c.Pincode,
		Landmark:    c.Landmark,
		OpeningTime: c.OpeningTime,
		ClosingTime: c.ClosingTime,
		Images:      c.Images,
	}
}

func (u *ClinicUsecase) List(ctx context.Context, q repository.CatalogListQuery) (ClinicListOutput, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	list, total, err := u.clinicRepo.List(ctx, q)
	if err != nil {
		return ClinicListOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to list clinics")
	}
	out := ClinicListOutput{Items: make([]ClinicOutput, 0, len(list)), Page: q.Page, Limit: q.Limit, Total: total}
	for _, c := range list {
		out.Items = append(out.Items, toClinicOutput(c))
	}
	return out, nil
}

func (u *ClinicUsecase) Get(ctx context.Context, id int64) (ClinicOutput, error) {
	c, err := u.clinicRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ClinicOutput{}, NewHTTPError(http.StatusNotFound, "clinic not found")
		}
		return ClinicOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch clinic")
	}
	return toClinicOutput(c), nil
}

func (u *ClinicUsecase) Create(ctx context.Context, in CreateClinicInput) (ClinicOutput, error) {
	if in.Name == "" || in.Line == "" || in.City == "" {
		return ClinicOutput{}, NewHTTPError(http.StatusBadRequest, "name, line and city are required")
	}
	created, err := u.clinicRepo.Create(ctx, model.Clinic{
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Line:        in.Line,
		City:        in.City,
		State:       in.State,
		Pincode:     in.Pincode,
		Landmark:    in.Landmark,
		OpeningTime: in.OpeningTime,
		ClosingTime: in.ClosingTime,
		Images:      in.Images,
	})
	if err != nil {
		return ClinicOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create clinic")
	}
	return toClinicOutput(created), nil
}

func (u *ClinicUsecase) Update(ctx context.Context, id int64, p ClinicPatch) (ClinicOutput, error) {
	c, err := u.clinicRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ClinicOutput{}, NewHTTPError(http.StatusNotFound, "clinic not found")
		}
		return ClinicOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch clinic")
	}
	if p.Name != nil {
		if *p.Name == "" {
			return ClinicOutput{}, NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Line != nil {
		c.Line = *p.Line
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.Pincode != nil {
		c.Pincode = *p.Pincode
	}
	if p.Landmark != nil {
		c.Landmark = *p.Landmark
	}
	if p.OpeningTime != nil {
		c.OpeningTime = *p.OpeningTime
	}
	if p.ClosingTime != nil {
		c.ClosingTime = *p.ClosingTime
	}
	if p.Images != nil {
		c.Images = *p.Images
	}
	if err := u.clinicRepo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ClinicOutput{}, NewHTTPError(http.StatusNotFound, "clinic not found")
		}
		return ClinicOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update clinic")
	}
	return toClinicOutput(c), nil
}
