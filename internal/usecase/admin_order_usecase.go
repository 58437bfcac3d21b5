package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

type AdminOrderListInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	Q      string
}

type AdminUpdateOrderStatusInput struct {
	Status string `json:"status"`
	// "orderStatus" か "paymentStatus"
	Type string `json:"type"`
}

type AdminOrderUsecase struct {
	tx        repository.TransactionManager
	auditRepo repository.AuditLogRepository
}

func NewAdminOrderUsecase(tx repository.TransactionManager, ar repository.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: ar}
}

func isValidOrderStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return true
	}
	return false
}

func isValidPaymentStatus(s string) bool {
	switch model.PaymentStatus(s) {
	case model.PaymentStatusPending, model.PaymentStatusSuccess, model.PaymentStatusFailed,
		model.PaymentStatusRefundCreated, model.PaymentStatusRefundProcessed, model.PaymentStatusRefundFailed:
		return true
	}
	return false
}

func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) (OrderListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 10
	}
	if in.Status != "" && !isValidOrderStatus(in.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}
	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repository.AdminOrderListFilter{
			Page: in.Page, Limit: in.Limit, Status: in.Status, UserID: in.UserID, Q: in.Q,
		})
		if err != nil {
			return err
		}
		out = OrderListOutput{Orders: make([]OrderOutput, 0, len(orders)), Page: in.Page, Limit: in.Limit, Total: total}
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return err
			}
			out.Orders = append(out.Orders, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderListOutput{}, err
		}
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}
	return out, nil
}

// UpdateStatus は管理者による注文/支払いステータスの変更。監査ログを残す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorID, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if in.Type != "orderStatus" && in.Type != "paymentStatus" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "type must be orderStatus or paymentStatus")
	}

	var before, after string
	var action model.AuditAction
	var updated model.Order
	var items []model.OrderItem

	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return err
		}

		switch in.Type {
		case "orderStatus":
			if !isValidOrderStatus(in.Status) {
				return NewHTTPError(http.StatusBadRequest, "invalid order status")
			}
			next := model.OrderStatus(in.Status)
			if o.Status == next {
				return NewHTTPError(http.StatusConflict, "order already has this status")
			}
			if o.Status.IsTerminal() {
				return NewHTTPError(http.StatusConflict, fmt.Sprintf("order is already %s", o.Status))
			}
			// 管理者キャンセルも在庫を戻す
			if next == model.OrderStatusCancelled {
				lines, err := r.OrderItems().ListByOrderID(ctx, orderID)
				if err != nil {
					return err
				}
				for _, it := range lines {
					if it.ItemType != model.ItemTypeMedicine {
						continue
					}
					if err := r.Inventory().IncreaseStock(ctx, it.ItemID, it.Quantity); err != nil {
						return err
					}
				}
			}
			if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
				return err
			}
			before, after = string(o.Status), string(next)
			action = model.AuditActionUpdateOrderStatus
			o.Status = next
		case "paymentStatus":
			if !isValidPaymentStatus(in.Status) {
				return NewHTTPError(http.StatusBadRequest, "invalid payment status")
			}
			next := model.PaymentStatus(in.Status)
			if o.PaymentStatus == next {
				return NewHTTPError(http.StatusConflict, "order already has this payment status")
			}
			if err := r.Orders().UpdatePaymentStatus(ctx, orderID, next); err != nil {
				return err
			}
			before, after = string(o.PaymentStatus), string(next)
			action = model.AuditActionUpdatePaymentStatus
			o.PaymentStatus = next
		}

		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		updated = o

		// 監査ログも同一Txで書く。残せないなら変更ごとロールバック。
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       action,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   fmt.Sprintf(`{"status":%q}`, before),
			AfterJSON:    fmt.Sprintf(`{"status":%q}`, after),
		})
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to update order status")
	}
	return toOrderOutput(updated, items), nil
}

// Audit は監査ログの一覧（管理者向け）。
func (u *AdminOrderUsecase) Audit(ctx context.Context, f repository.AuditLogFilter) ([]model.AuditLog, error) {
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "failed to list audit logs")
	}
	return logs, nil
}
