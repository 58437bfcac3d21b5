package repository

import (
	"context"
	"testing"

	"app/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

// 既存行がある場合は行ロックの上で数量を加算する（2個 + 3個 → 5個）
func TestCartUpsertLine_AccumulatesMedicineQuantity(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewCartGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE cart_id = \$1 AND item_id = \$2 AND item_type = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "item_id", "item_type", "quantity"}).
			AddRow(1, 5, 10, "Medicine", 2))
	// SETは quantity, updated_at の順（gormはmapのキーをソートする）
	mock.ExpectExec(`UPDATE "cart_items" SET`).
		WithArgs(int64(5), sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.UpsertLine(context.Background(), 5, model.CartItem{
		ItemID: 10, ItemType: model.ItemTypeMedicine, Quantity: 3,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 行が無ければ新規作成する
func TestCartUpsertLine_CreatesLineWhenAbsent(t *testing.T) {
	gdb, mock := newMockDB(t)
	r := NewCartGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart_items" WHERE cart_id = \$1 AND item_id = \$2 AND item_type = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := r.UpsertLine(context.Background(), 5, model.CartItem{
		ItemID: 10, ItemType: model.ItemTypeMedicine, Quantity: 2,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
