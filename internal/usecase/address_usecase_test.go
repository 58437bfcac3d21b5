package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validAddressInput() usecase.AddressInput {
	return usecase.AddressInput{
		Name: "Asha", Mobile: "9876543210", Line: "12 MG Road",
		City: "Pune", State: "MH", Pincode: "411001",
	}
}

func TestAddressCreate_ValidatesMobileAndPincode(t *testing.T) {
	uc := usecase.NewAddressUsecase(new(AddressRepoMock))
	ctx := context.Background()

	in := validAddressInput()
	in.Mobile = "12345"
	_, err := uc.Create(ctx, 1, in)
	assertStatus(t, err, http.StatusBadRequest)

	in = validAddressInput()
	in.Pincode = "abc123"
	_, err = uc.Create(ctx, 1, in)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAddressCreate_OK(t *testing.T) {
	addresses := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addresses)
	ctx := context.Background()

	addresses.On("Create", ctx, mock.MatchedBy(func(a model.Address) bool {
		return a.UserID == 1 && a.Pincode == "411001"
	})).Return(model.Address{ID: 3, UserID: 1, Name: "Asha", Mobile: "9876543210", Line: "12 MG Road", City: "Pune", Pincode: "411001"}, nil)

	out, err := uc.Create(ctx, 1, validAddressInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
}

func TestAddressUpdate_HidesForeignAddress(t *testing.T) {
	addresses := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addresses)
	ctx := context.Background()

	addresses.On("FindByID", ctx, int64(3)).Return(model.Address{ID: 3, UserID: 99}, nil)

	_, err := uc.Update(ctx, 1, 3, validAddressInput())
	assertStatus(t, err, http.StatusNotFound)
	addresses.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddressDelete_HidesForeignAddress(t *testing.T) {
	addresses := new(AddressRepoMock)
	uc := usecase.NewAddressUsecase(addresses)
	ctx := context.Background()

	addresses.On("FindByID", ctx, int64(3)).Return(model.Address{ID: 3, UserID: 99}, nil)

	err := uc.Delete(ctx, 1, 3)
	assertStatus(t, err, http.StatusNotFound)
	addresses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
