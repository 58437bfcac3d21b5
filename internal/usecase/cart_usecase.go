package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

type CartItemInput struct {
	ItemID   int64      `json:"itemId"`
	ItemType string     `json:"itemType"`
	Quantity int64      `json:"quantity"`
	Date     *time.Time `json:"date"`
	TimeSlot string     `json:"timeSlot"`
}

type CartLineOutput struct {
	ItemID   int64      `json:"itemId"`
	ItemType string     `json:"itemType"`
	Name     string     `json:"name"`
	Price    int64      `json:"price"`
	Quantity int64      `json:"quantity,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `json:"timeSlot,omitempty"`
	Subtotal int64      `json:"subtotal"`
}

type CartOutput struct {
	Items       []CartLineOutput `json:"items"`
	TotalAmount int64            `json:"totalAmount"`
}

type CartUsecase struct {
	tx repository.TransactionManager
}

func NewCartUsecase(tx repository.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

// 入力の種別チェック。Medicineは数量、Testは日付＋時間枠が必須。
func validateCartItemInput(in CartItemInput) error {
	switch model.ItemType(in.ItemType) {
	case model.ItemTypeMedicine:
		if in.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}
	case model.ItemTypeTest:
		if in.Date == nil || in.TimeSlot == "" {
			return NewHTTPError(http.StatusBadRequest, "date and timeSlot are required for a test")
		}
		if !model.IsValidTimeSlot(in.TimeSlot) {
			return NewHTTPError(http.StatusBadRequest, "invalid time slot")
		}
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid item type")
	}
	return nil
}

// カタログの現在価格で明細を評価する。カタログから消えた商品は合計に含めない。
func buildCartLines(ctx context.Context, r repository.TxRepos, cartID int64) ([]CartLineOutput, int64, error) {
	lines, err := r.CartItems().ListByCartID(ctx, cartID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]CartLineOutput, 0, len(lines))
	var total int64
	for _, line := range lines {
		lo := CartLineOutput{
			ItemID:   line.ItemID,
			ItemType: string(line.ItemType),
			Quantity: line.Quantity,
			Date:     line.Date,
			TimeSlot: line.TimeSlot,
		}
		switch line.ItemType {
		case model.ItemTypeMedicine:
			m, err := r.Medicines().FindByID(ctx, line.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return nil, 0, err
			}
			lo.Name = m.Name
			lo.Price = m.Price
			lo.Subtotal = m.Price * line.Quantity
		case model.ItemTypeTest:
			t, err := r.LabTests().FindByID(ctx, line.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return nil, 0, err
			}
			lo.Name = t.Name
			lo.Price = t.Price
			lo.Subtotal = t.Price
		}
		total += lo.Subtotal
		out = append(out, lo)
	}
	return out, total, nil
}

func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in CartItemInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCartItemInput(in); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		itemType := model.ItemType(in.ItemType)

		// 対象がカタログに実在するか＋在庫の事前チェック
		switch itemType {
		case model.ItemTypeMedicine:
			m, err := r.Medicines().FindByID(ctx, in.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "medicine not found")
				}
				return err
			}
			cart, err := r.Carts().GetOrCreateByUserID(ctx, userID)
			if err != nil {
				return err
			}
			newQty := in.Quantity
			if existing, err := r.CartItems().FindByCartAndItem(ctx, cart.ID, in.ItemID, itemType); err == nil {
				newQty += existing.Quantity
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if newQty > m.Stock {
				return NewHTTPError(http.StatusBadRequest, "quantity exceeds available stock")
			}
			if err := r.CartItems().UpsertLine(ctx, cart.ID, model.CartItem{
				CartID: cart.ID, ItemID: in.ItemID, ItemType: itemType, Quantity: in.Quantity,
			}); err != nil {
				return err
			}
			return u.refresh(ctx, r, cart.ID, &out)
		case model.ItemTypeTest:
			if _, err := r.LabTests().FindByID(ctx, in.ItemID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "test not found")
				}
				return err
			}
			cart, err := r.Carts().GetOrCreateByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if err := r.CartItems().UpsertLine(ctx, cart.ID, model.CartItem{
				CartID: cart.ID, ItemID: in.ItemID, ItemType: itemType, Date: in.Date, TimeSlot: in.TimeSlot,
			}); err != nil {
				return err
			}
			return u.refresh(ctx, r, cart.ID, &out)
		}
		return NewHTTPError(http.StatusBadRequest, "invalid item type")
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CartOutput{}, err
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to add item to cart")
	}
	return out, nil
}

// 明細変更後に合計を取り直して保存する
func (u *CartUsecase) refresh(ctx context.Context, r repository.TxRepos, cartID int64, out *CartOutput) error {
	lines, total, err := buildCartLines(ctx, r, cartID)
	if err != nil {
		return err
	}
	if err := r.Carts().UpdateTotal(ctx, cartID, total); err != nil {
		return err
	}
	out.Items = lines
	out.TotalAmount = total
	return nil
}

func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, in CartItemInput) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCartItemInput(in); err != nil {
		return CartOutput{}, err
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		itemType := model.ItemType(in.ItemType)
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "cart not found")
			}
			return err
		}
		line, err := r.CartItems().FindByCartAndItem(ctx, cart.ID, in.ItemID, itemType)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "item not found in cart")
			}
			return err
		}
		switch itemType {
		case model.ItemTypeMedicine:
			m, err := r.Medicines().FindByID(ctx, in.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return NewHTTPError(http.StatusNotFound, "medicine not found")
				}
				return err
			}
			if in.Quantity > m.Stock {
				return NewHTTPError(http.StatusBadRequest, "quantity exceeds available stock")
			}
			line.Quantity = in.Quantity
		case model.ItemTypeTest:
			line.Date = in.Date
			line.TimeSlot = in.TimeSlot
		}
		if err := r.CartItems().UpdateLine(ctx, line); err != nil {
			return err
		}
		return u.refresh(ctx, r, cart.ID, &out)
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CartOutput{}, err
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update cart item")
	}
	return out, nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, itemID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "cart not found")
			}
			return err
		}
		if err := r.CartItems().DeleteLine(ctx, cart.ID, itemID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "item not found in cart")
			}
			return err
		}
		return u.refresh(ctx, r, cart.ID, &out)
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CartOutput{}, err
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to remove cart item")
	}
	return out, nil
}

func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Carts().DeleteByUserID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "cart not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return err
		}
		return NewHTTPError(http.StatusInternalServerError, "failed to clear cart")
	}
	return nil
}

func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "cart not found")
			}
			return err
		}
		lines, total, err := buildCartLines(ctx, r, cart.ID)
		if err != nil {
			return err
		}
		out.Items = lines
		out.TotalAmount = total
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return CartOutput{}, err
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch cart")
	}
	return out, nil
}
