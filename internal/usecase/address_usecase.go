package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

type AddressInput struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Line     string `json:"line"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type AddressOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Line     string `json:"line"`
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark,omitempty"`
}

type AddressUsecase struct {
	addressRepo repository.AddressRepository
}

func NewAddressUsecase(ar repository.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: ar}
}

func toAddressOutput(a model.Address) AddressOutput {
	return AddressOutput{
		ID:       a.ID,
		Name:     a.Name,
		Mobile:   a.Mobile,
		Line:     a.Line,
		City:     a.City,
		State:    a.State,
		Pincode:  a.Pincode,
		Landmark: a.Landmark,
	}
}

func validateAddressInput(in AddressInput) error {
	if in.Name == "" || in.Line == "" || in.City == "" {
		return NewHTTPError(http.StatusBadRequest, "name, line and city are required")
	}
	if !mobileRe.MatchString(in.Mobile) {
		return NewHTTPError(http.StatusBadRequest, "mobile must be 10 digits")
	}
	if !pincodeRe.MatchString(in.Pincode) {
		return NewHTTPError(http.StatusBadRequest, "pincode must be 6 digits")
	}
	return nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (AddressOutput, error) {
	if userID <= 0 {
		return AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAddressInput(in); err != nil {
		return AddressOutput{}, err
	}
	created, err := u.addressRepo.Create(ctx, model.Address{
		UserID:   userID,
		Name:     in.Name,
		Mobile:   in.Mobile,
		Line:     in.Line,
		City:     in.City,
		State:    in.State,
		Pincode:  in.Pincode,
		Landmark: in.Landmark,
	})
	if err != nil {
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create address")
	}
	return toAddressOutput(created), nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]AddressOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	list, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to list addresses")
	}
	out := make([]AddressOutput, 0, len(list))
	for _, a := range list {
		out = append(out, toAddressOutput(a))
	}
	return out, nil
}

// 他人の住所は存在ごと隠す（404）
func (u *AddressUsecase) findOwned(ctx context.Context, userID, addressID int64) (model.Address, error) {
	a, err := u.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch address")
	}
	if a.UserID != userID {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	return a, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID, addressID int64, in AddressInput) (AddressOutput, error) {
	if userID <= 0 {
		return AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateAddressInput(in); err != nil {
		return AddressOutput{}, err
	}
	a, err := u.findOwned(ctx, userID, addressID)
	if err != nil {
		return AddressOutput{}, err
	}
	a.Name = in.Name
	a.Mobile = in.Mobile
	a.Line = in.Line
	a.City = in.City
	a.State = in.State
	a.Pincode = in.Pincode
	a.Landmark = in.Landmark
	if err := u.addressRepo.Update(ctx, a); err != nil {
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update address")
	}
	return toAddressOutput(a), nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := u.findOwned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := u.addressRepo.Delete(ctx, addressID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "failed to delete address")
	}
	return nil
}
