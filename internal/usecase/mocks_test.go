package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	medicines  repo.MedicineRepository
	labTests   repo.LabTestRepository
	inventory  repo.InventoryRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Medicines() repo.MedicineRepository   { return r.medicines }
func (r *TxReposMock) LabTests() repo.LabTestRepository     { return r.labTests }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type MedicineRepoMock struct{ mock.Mock }

func (m *MedicineRepoMock) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Medicine, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.Medicine)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MedicineRepoMock) FindByID(ctx context.Context, id int64) (model.Medicine, error) {
	args := m.Called(ctx, id)
	med, _ := args.Get(0).(model.Medicine)
	return med, args.Error(1)
}

func (m *MedicineRepoMock) Create(ctx context.Context, med model.Medicine) (model.Medicine, error) {
	args := m.Called(ctx, med)
	out, _ := args.Get(0).(model.Medicine)
	return out, args.Error(1)
}

func (m *MedicineRepoMock) Update(ctx context.Context, med model.Medicine) error {
	args := m.Called(ctx, med)
	return args.Error(0)
}

func (m *MedicineRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type LabTestRepoMock struct{ mock.Mock }

func (m *LabTestRepoMock) List(ctx context.Context, q repo.CatalogListQuery) ([]model.LabTest, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.LabTest)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *LabTestRepoMock) FindByID(ctx context.Context, id int64) (model.LabTest, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.LabTest)
	return t, args.Error(1)
}

func (m *LabTestRepoMock) Create(ctx context.Context, t model.LabTest) (model.LabTest, error) {
	args := m.Called(ctx, t)
	out, _ := args.Get(0).(model.LabTest)
	return out, args.Error(1)
}

func (m *LabTestRepoMock) Update(ctx context.Context, t model.LabTest) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type ClinicRepoMock struct{ mock.Mock }

func (m *ClinicRepoMock) List(ctx context.Context, q repo.CatalogListQuery) ([]model.Clinic, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]model.Clinic)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *ClinicRepoMock) FindByID(ctx context.Context, id int64) (model.Clinic, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Clinic)
	return c, args.Error(1)
}

func (m *ClinicRepoMock) Create(ctx context.Context, c model.Clinic) (model.Clinic, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Clinic)
	return out, args.Error(1)
}

func (m *ClinicRepoMock) Update(ctx context.Context, c model.Clinic) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateTotal(ctx context.Context, cartID int64, totalAmount int64) error {
	args := m.Called(ctx, cartID, totalAmount)
	return args.Error(0)
}

func (m *CartRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndItem(ctx context.Context, cartID int64, itemID int64, itemType model.ItemType) (model.CartItem, error) {
	args := m.Called(ctx, cartID, itemID, itemType)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertLine(ctx context.Context, cartID int64, line model.CartItem) error {
	args := m.Called(ctx, cartID, line)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateLine(ctx context.Context, line model.CartItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteLine(ctx context.Context, cartID int64, itemID int64) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, medicineID int64, newStock int64) error {
	args := m.Called(ctx, medicineID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, medicineID int64, qty int64) (bool, error) {
	args := m.Called(ctx, medicineID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, medicineID int64, qty int64) error {
	args := m.Called(ctx, medicineID, qty)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) MarkPaymentCaptured(ctx context.Context, gatewayOrderID string, gatewayPaymentID string) (model.Order, bool, error) {
	args := m.Called(ctx, gatewayOrderID, gatewayPaymentID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) MarkPaymentFailed(ctx context.Context, gatewayOrderID string) (model.Order, bool, error) {
	args := m.Called(ctx, gatewayOrderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) MarkRefundCreated(ctx context.Context, gatewayPaymentID string, gatewayRefundID string) (model.Order, bool, error) {
	args := m.Called(ctx, gatewayPaymentID, gatewayRefundID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) MarkRefundProcessed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error) {
	args := m.Called(ctx, gatewayPaymentID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) MarkRefundFailed(ctx context.Context, gatewayPaymentID string) (model.Order, bool, error) {
	args := m.Called(ctx, gatewayPaymentID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Address)
	return list, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) Update(ctx context.Context, address model.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *AddressRepoMock) Delete(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) IsOwnedByUser(ctx context.Context, addressID, userID int64) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Gateway / Mailer mocks
// =====================

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateIntent(ctx context.Context, amountMinor int64, currency string, receipt string, notes map[string]interface{}) (string, error) {
	args := m.Called(ctx, amountMinor, currency, receipt, notes)
	return args.String(0), args.Error(1)
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(to string, subject string, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}
