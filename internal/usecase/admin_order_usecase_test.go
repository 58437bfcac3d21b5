package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminFixture() (*usecase.AdminOrderUsecase, *OrderRepoMock, *OrderItemRepoMock, *InventoryRepoMock, *AuditRepoMock) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	inventory := new(InventoryRepoMock)
	audit := new(AuditRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: items,
		inventory:  inventory,
		auditLogs:  audit,
	}}
	return usecase.NewAdminOrderUsecase(tx, audit), orders, items, inventory, audit
}

func TestAdminUpdateStatus_WritesAuditLog(t *testing.T) {
	uc, orders, items, _, audit := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusConfirmed}, nil)
	orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusShipped).Return(nil)
	items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{}, nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == 9 &&
			l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 100
	})).Return(nil)

	out, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Shipped", Type: "orderStatus",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Shipped", out.Status)
	audit.AssertExpectations(t)
}

func TestAdminUpdateStatus_AuditFailureFailsUpdate(t *testing.T) {
	uc, orders, items, _, audit := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusConfirmed}, nil)
	orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusShipped).Return(nil)
	items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{}, nil)
	audit.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	// 監査ログが書けないならTxごと失敗させる
	_, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Shipped", Type: "orderStatus",
	})
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestAdminUpdateStatus_TerminalGuard(t *testing.T) {
	uc, orders, _, _, audit := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusDelivered}, nil)

	_, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Shipped", Type: "orderStatus",
	})

	assertStatus(t, err, http.StatusConflict)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_CancelRestoresStock(t *testing.T) {
	uc, orders, items, inventory, audit := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusConfirmed}, nil)
	items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{
		{OrderID: 100, ItemID: 10, ItemType: model.ItemTypeMedicine, Quantity: 3},
	}, nil)
	inventory.On("IncreaseStock", ctx, int64(10), int64(3)).Return(nil)
	orders.On("UpdateStatus", ctx, int64(100), model.OrderStatusCancelled).Return(nil)
	audit.On("Create", ctx, mock.Anything).Return(nil)

	out, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Cancelled", Type: "orderStatus",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Cancelled", out.Status)
	inventory.AssertCalled(t, "IncreaseStock", ctx, int64(10), int64(3))
}

func TestAdminUpdateStatus_PaymentStatus(t *testing.T) {
	uc, orders, items, _, audit := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusConfirmed, PaymentStatus: model.PaymentStatusPending}, nil)
	orders.On("UpdatePaymentStatus", ctx, int64(100), model.PaymentStatusSuccess).Return(nil)
	items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{}, nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePaymentStatus
	})).Return(nil)

	out, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Success", Type: "paymentStatus",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Success", out.PaymentStatus)
}

func TestAdminUpdateStatus_InvalidType(t *testing.T) {
	uc, _, _, _, _ := newAdminFixture()

	_, err := uc.UpdateStatus(context.Background(), 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Shipped", Type: "shipping",
	})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAdminUpdateStatus_SameStatusConflict(t *testing.T) {
	uc, orders, _, _, _ := newAdminFixture()
	ctx := context.Background()

	orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, Status: model.OrderStatusShipped}, nil)

	_, err := uc.UpdateStatus(ctx, 9, 100, usecase.AdminUpdateOrderStatusInput{
		Status: "Shipped", Type: "orderStatus",
	})
	assertStatus(t, err, http.StatusConflict)
}

func TestAdminList_InvalidStatusFilter(t *testing.T) {
	uc, _, _, _, _ := newAdminFixture()

	_, err := uc.List(context.Background(), usecase.AdminOrderListInput{Status: "Teleported"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAdminList_PassesFilter(t *testing.T) {
	uc, orders, items, _, _ := newAdminFixture()
	ctx := context.Background()
	userID := int64(1)

	orders.On("ListAdmin", ctx, mock.MatchedBy(func(f repo.AdminOrderListFilter) bool {
		return f.Page == 2 && f.Limit == 20 && f.Status == "Pending" && f.UserID != nil && *f.UserID == 1 && f.Q == "para"
	})).Return([]model.Order{{ID: 1}}, int64(1), nil)
	items.On("ListByOrderID", ctx, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := uc.List(ctx, usecase.AdminOrderListInput{
		Page: 2, Limit: 20, Status: "Pending", UserID: &userID, Q: "para",
	})

	assert.NoError(t, err)
	assert.Len(t, out.Orders, 1)
	assert.Equal(t, int64(1), out.Total)
}
