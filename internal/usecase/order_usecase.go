package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/mailer"
	"app/internal/repository"
)

type OrderItemInput struct {
	ItemID   int64      `json:"itemId"`
	ItemType string     `json:"itemType"`
	Quantity int64      `json:"quantity"`
	Date     *time.Time `json:"date"`
	TimeSlot string     `json:"timeSlot"`
}

type PlaceOrderInput struct {
	AddressID   int64            `json:"addressId"`
	Items       []OrderItemInput `json:"items"`
	PaymentMode string           `json:"paymentMode"`
}

type OrderItemOutput struct {
	ItemID   int64      `json:"itemId"`
	ItemType string     `json:"itemType"`
	Name     string     `json:"name"`
	Price    int64      `json:"price"`
	Quantity int64      `json:"quantity,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	TimeSlot string     `json:"timeSlot,omitempty"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"userId"`
	AddressID      int64             `json:"addressId"`
	Status         string            `json:"status"`
	PaymentMode    string            `json:"paymentMode"`
	PaymentStatus  string            `json:"paymentStatus"`
	TotalAmount    int64             `json:"totalAmount"`
	GatewayOrderID string            `json:"gatewayOrderId,omitempty"`
	Items          []OrderItemOutput `json:"items,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
	Total  int64         `json:"total"`
}

type OrderUsecase struct {
	tx          repository.TransactionManager
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	gw          gateway.PaymentGateway
	mail        mailer.Mailer
	log         *logrus.Logger
}

func NewOrderUsecase(
	tx repository.TransactionManager,
	ar repository.AddressRepository,
	ur repository.UserRepository,
	gw gateway.PaymentGateway,
	mail mailer.Mailer,
	log *logrus.Logger,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, addressRepo: ar, userRepo: ur, gw: gw, mail: mail, log: log}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:             o.ID,
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		Status:         string(o.Status),
		PaymentMode:    string(o.PaymentMode),
		PaymentStatus:  string(o.PaymentStatus),
		TotalAmount:    o.TotalAmount,
		GatewayOrderID: o.GatewayOrderID,
		CreatedAt:      o.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemOutput{
			ItemID:   it.ItemID,
			ItemType: string(it.ItemType),
			Name:     it.NameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
			Date:     it.Date,
			TimeSlot: it.TimeSlot,
		})
	}
	return out
}

func isValidPaymentMode(s string) bool {
	switch model.PaymentMode(s) {
	case model.PaymentModeCOD, model.PaymentModeUPI, model.PaymentModeCard:
		return true
	}
	return false
}

// 明細の検証と確定時点スナップショットの組み立て。在庫の減算はここではしない。
func (u *OrderUsecase) buildOrderItems(ctx context.Context, r repository.TxRepos, items []OrderItemInput) ([]model.OrderItem, int64, error) {
	snapshots := make([]model.OrderItem, 0, len(items))
	var total int64
	for _, in := range items {
		switch model.ItemType(in.ItemType) {
		case model.ItemTypeMedicine:
			if in.Quantity < 1 {
				return nil, 0, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
			}
			m, err := r.Medicines().FindByID(ctx, in.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, 0, NewHTTPError(http.StatusNotFound, fmt.Sprintf("medicine %d not found", in.ItemID))
				}
				return nil, 0, err
			}
			if in.Quantity > m.Stock {
				return nil, 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity exceeds available stock for %s", m.Name))
			}
			snapshots = append(snapshots, model.OrderItem{
				ItemID:            m.ID,
				ItemType:          model.ItemTypeMedicine,
				NameSnapshot:      m.Name,
				UnitPriceSnapshot: m.Price,
				Quantity:          in.Quantity,
			})
			total += m.Price * in.Quantity
		case model.ItemTypeTest:
			if in.Date == nil || in.TimeSlot == "" {
				return nil, 0, NewHTTPError(http.StatusBadRequest, "date and timeSlot are required for a test")
			}
			if !model.IsValidTimeSlot(in.TimeSlot) {
				return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid time slot")
			}
			t, err := r.LabTests().FindByID(ctx, in.ItemID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, 0, NewHTTPError(http.StatusNotFound, fmt.Sprintf("test %d not found", in.ItemID))
				}
				return nil, 0, err
			}
			snapshots = append(snapshots, model.OrderItem{
				ItemID:            t.ID,
				ItemType:          model.ItemTypeTest,
				NameSnapshot:      t.Name,
				UnitPriceSnapshot: t.Price,
				Date:              in.Date,
				TimeSlot:          in.TimeSlot,
			})
			total += t.Price
		default:
			return nil, 0, NewHTTPError(http.StatusBadRequest, "invalid item type")
		}
	}
	return snapshots, total, nil
}

// PlaceOrder は注文を確定する。
// オンライン決済はゲートウェイ注文の作成に成功してからDBへ書く。
// 途中で失敗したときは何も残さない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 || len(in.Items) == 0 || in.PaymentMode == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "addressId, items and paymentMode are required")
	}
	if !isValidPaymentMode(in.PaymentMode) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment mode")
	}

	addr, err := u.addressRepo.FindByID(ctx, in.AddressID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch address")
	}
	if addr.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "address does not belong to the user")
	}

	// 先に検証と価格確定だけを行う（まだ書き込まない）
	var snapshots []model.OrderItem
	var total int64
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		snapshots, total, err = u.buildOrderItems(ctx, r, in.Items)
		return err
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to validate order")
	}

	mode := model.PaymentMode(in.PaymentMode)
	status := model.OrderStatusPending
	gatewayOrderID := ""
	if mode == model.PaymentModeCOD {
		// 代引きは支払い待ちにせずそのまま確定
		status = model.OrderStatusConfirmed
	} else {
		receipt := fmt.Sprintf("rcpt_%d_%d", userID, time.Now().UnixMilli())
		// ゲートウェイはpaisa単位
		gatewayOrderID, err = u.gw.CreateIntent(ctx, total*100, "INR", receipt, map[string]interface{}{
			"user_id": userID,
		})
		if err != nil {
			u.log.WithError(err).Error("payment gateway order creation failed")
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to create payment order")
		}
	}

	var created model.Order
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		for _, it := range snapshots {
			if it.ItemType != model.ItemTypeMedicine {
				continue
			}
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ItemID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity exceeds available stock for %s", it.NameSnapshot))
			}
		}
		order := model.Order{
			UserID:         userID,
			AddressID:      in.AddressID,
			Status:         status,
			PaymentMode:    mode,
			PaymentStatus:  model.PaymentStatusPending,
			TotalAmount:    total,
			GatewayOrderID: gatewayOrderID,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, snapshots); err != nil {
			return err
		}
		created, err = r.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}
	return toOrderOutput(created, snapshots), nil
}

// CancelOrder は自分の注文をキャンセルする。終端ステータスからは変更できない。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var cancelled model.Order
	var items []model.OrderItem
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return err
		}
		// 他人の注文は存在自体を隠す
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if o.Status.IsTerminal() {
			return NewHTTPError(http.StatusConflict, fmt.Sprintf("order is already %s", o.Status))
		}
		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ItemType != model.ItemTypeMedicine {
				continue
			}
			if err := r.Inventory().IncreaseStock(ctx, it.ItemID, it.Quantity); err != nil {
				return err
			}
		}
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return err
		}
		o.Status = model.OrderStatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to cancel order")
	}

	// キャンセル通知。失敗してもAPIの結果は変えない。
	if user, err := u.userRepo.FindByID(ctx, userID); err == nil {
		subject, body := mailer.OrderCancelledMail(cancelled.ID)
		if err := u.mail.Send(user.Email, subject, body); err != nil {
			u.log.WithError(err).WithField("order_id", cancelled.ID).Warn("failed to send cancellation mail")
		}
	}
	return toOrderOutput(cancelled, items), nil
}

// GetOrder は本人または管理者だけが参照できる。
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (OrderOutput, error) {
	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return err
		}
		if o.UserID != userID && !isAdmin {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to fetch order")
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return err
		}
		out = OrderListOutput{Orders: make([]OrderOutput, 0, len(orders)), Page: page, Limit: limit, Total: total}
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
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}
	return out, nil
}
