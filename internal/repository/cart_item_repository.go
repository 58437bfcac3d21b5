package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndItem(ctx context.Context, cartID int64, itemID int64, itemType model.ItemType) (model.CartItem, error)
	// 同一商品はMedicineなら数量加算、Testなら予約枠の上書き
	UpsertLine(ctx context.Context, cartID int64, line model.CartItem) error
	UpdateLine(ctx context.Context, line model.CartItem) error
	DeleteLine(ctx context.Context, cartID int64, itemID int64) error
}
