package repository

import "context"

// 医薬品在庫の約束
type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, medicineID int64, newStock int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, medicineID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, medicineID int64, qty int64) error
}
