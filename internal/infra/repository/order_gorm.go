package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 10
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	//明細の品名スナップショットで部分一致
	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.name_snapshot ILIKE ?)",
			like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("id desc").Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

// webhook用の条件付き更新。
// 既に目標ステータスなら何も更新しない（applied=false）。
// 行が1件も無ければErrNotFound。
func (r *OrderGormRepository) MarkPaymentCaptured(ctx context.Context, gatewayOrderID string, gatewayPaymentID string) (model.Order, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("gateway_order_id = ? AND payment_status <> ?", gatewayOrderID, model.PaymentStatusSuccess).
		Updates(map[string]interface{}{
			"payment_status":     model.PaymentStatusSuccess,
			"status":             model.OrderStatusConfirmed,
			"gateway_payment_id": gatewayPaymentID,
		})
	if res.Error != nil {
		return model.Order{}, false, res.Error
	}

	return r.fetchByCorrelation(ctx, "gateway_order_id", gatewayOrderID, res.RowsAffected > 0)
}

func (r *OrderGormRepository) MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (model.Order, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("gateway_order_id = ? AND payment_status <> ?", gatewayOrderID, model.PaymentStatusFailed).
		Update("payment_status", model.PaymentStatusFailed)
	if res.Error != nil {
		return model.Order{}, false, res.Error
	}

	return r.fetchByCorrelation(ctx, "gateway_order_id", gatewayOrderID, res.RowsAffected > 0)
}

func (r *OrderGormRepository) MarkRefundCreated(ctx context.Context, gatewayPaymentID string, gatewayRefundID string) (model.Order, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("gateway_payment_id = ? AND payment_status <> ?", gatewayPaymentID, model.PaymentStatusRefundCreated).
		Updates(map[string]interface{}{
			"payment_status":    model.PaymentStatusRefundCreated,
			"status":            model.OrderStatusCancelled,
			"gateway_refund_id": gatewayRefundID,
		})
	if res.Error != nil {
		return model.Order{}, false, res.Error
	}

	return r.fetchByCorrelation(ctx, "gateway_payment_id", gatewayPaymentID, res.RowsAffected > 0)
}

func (r *OrderGormRepository) MarkRefundProcessed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("gateway_payment_id = ? AND payment_status <> ?", gatewayPaymentID, model.PaymentStatusRefundProcessed).
		Update("payment_status", model.PaymentStatusRefundProcessed)
	if res.Error != nil {
		return model.Order{}, false, res.Error
	}

	return r.fetchByCorrelation(ctx, "gateway_payment_id", gatewayPaymentID, res.RowsAffected > 0)
}

func (r *OrderGormRepository) MarkRefundFailed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("gateway_payment_id = ? AND payment_status <> ?", gatewayPaymentID, model.PaymentStatusRefundFailed).
		Update("payment_status", model.PaymentStatusRefundFailed)
	if res.Error != nil {
		return model.Order{}, false, res.Error
	}

	return r.fetchByCorrelation(ctx, "gateway_payment_id", gatewayPaymentID, res.RowsAffected > 0)
}

func (r *OrderGormRepository) fetchByCorrelation(ctx context.Context, column string, value string, applied bool) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, false, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, false, err
	}
	return o, applied, nil
}
