package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

// HTTPError はユースケース層からハンドラへ返すエラー。ステータスコードを保持する。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status=%d message=%s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// AsHTTPError は err が HTTPError の場合に取り出す。
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

type MedicineOutput struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Stock       int64    `json:"stock"`
	StripSize   int64    `json:"stripSize"`
	Images      []string `json:"images"`
}

type CreateMedicineInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Stock       int64    `json:"stock"`
	StripSize   int64    `json:"stripSize"`
	Images      []string `json:"images"`
}

// MedicinePatch は部分更新。nil のフィールドは変更しない。
type MedicinePatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price"`
	StripSize   *int64    `json:"stripSize"`
	Images      *[]string `json:"images"`
}

type MedicineListOutput struct {
	Items []MedicineOutput `json:"items"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}

type MedicineUsecase struct {
	medicineRepo repository.MedicineRepository
	tx           repository.TransactionManager
}

func NewMedicineUsecase(mr repository.MedicineRepository, tx repository.TransactionManager) *MedicineUsecase {
	return &MedicineUsecase{medicineRepo: mr, tx: tx}
}

func toMedicineOutput(m model.Medicine) MedicineOutput {
	return MedicineOutput{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		StripSize:   m.StripSize,
		Images:      m.Images,
	}
}

func (u *MedicineUsecase) List(ctx context.Context, q repository.CatalogListQuery) (MedicineListOutput, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	list, total, err := u.medicineRepo.List(ctx, q)
	if err != nil {
		return MedicineListOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to list medicines")
	}
	out := MedicineListOutput{Items: make([]MedicineOutput, 0, len(list)), Page: q.Page, Limit: q.Limit, Total: total}
	for _, m := range list {
		out.Items = append(out.Items, toMedicineOutput(m))
	}
	return out, nil
}

func (u *MedicineUsecase) Get(ctx context.Context, id int64) (MedicineOutput, error) {
	m, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MedicineOutput{}, NewHTTPError(http.StatusNotFound, "medicine not found")
		}
		return MedicineOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch medicine")
	}
	return toMedicineOutput(m), nil
}

func (u *MedicineUsecase) Create(ctx context.Context, in CreateMedicineInput) (MedicineOutput, error) {
	if in.Name == "" || in.Price <= 0 {
		return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "name and positive price are required")
	}
	if in.Stock < 0 || in.StripSize < 0 {
		return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "stock and stripSize must not be negative")
	}
	m := model.Medicine{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		StripSize:   in.StripSize,
		Images:      in.Images,
	}
	created, err := u.medicineRepo.Create(ctx, m)
	if err != nil {
		return MedicineOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create medicine")
	}
	return toMedicineOutput(created), nil
}

func (u *MedicineUsecase) Update(ctx context.Context, id int64, p MedicinePatch) (MedicineOutput, error) {
	m, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MedicineOutput{}, NewHTTPError(http.StatusNotFound, "medicine not found")
		}
		return MedicineOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch medicine")
	}
	if p.Name != nil {
		if *p.Name == "" {
			return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Price != nil {
		if *p.Price <= 0 {
			return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "price must be positive")
		}
		m.Price = *p.Price
	}
	if p.StripSize != nil {
		if *p.StripSize < 0 {
			return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "stripSize must not be negative")
		}
		m.StripSize = *p.StripSize
	}
	if p.Images != nil {
		m.Images = *p.Images
	}
	if err := u.medicineRepo.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MedicineOutput{}, NewHTTPError(http.StatusNotFound, "medicine not found")
		}
		return MedicineOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update medicine")
	}
	return toMedicineOutput(m), nil
}

// SetStock は在庫の絶対値更新。更新と監査ログを同一Txで書く。
func (u *MedicineUsecase) SetStock(ctx context.Context, actorID, id, stock int64) (MedicineOutput, error) {
	if stock < 0 {
		return MedicineOutput{}, NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}
	var before model.Medicine
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		before, err = r.Medicines().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "medicine not found")
			}
			return err
		}
		if err := r.Inventory().SetStock(ctx, id, stock); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "medicine not found")
			}
			return err
		}
		beforeJSON, _ := json.Marshal(map[string]int64{"stock": before.Stock})
		afterJSON, _ := json.Marshal(map[string]int64{"stock": stock})
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceMedicine,
			ResourceID:   id,
			BeforeJSON:   string(beforeJSON),
			AfterJSON:    string(afterJSON),
		})
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return MedicineOutput{}, err
		}
		return MedicineOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update stock")
	}
	before.Stock = stock
	return toMedicineOutput(before), nil
}

func (u *MedicineUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.medicineRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "medicine not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "failed to delete medicine")
	}
	return nil
}
