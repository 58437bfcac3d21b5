package repository

import (
	"app/internal/domain/model"
	"context"
)

// カート本体。1ユーザーにつき1件。
type CartRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	UpdateTotal(ctx context.Context, cartID int64, totalAmount int64) error
	//カート本体と明細を丸ごと削除
	DeleteByUserID(ctx context.Context, userID int64) error
}
