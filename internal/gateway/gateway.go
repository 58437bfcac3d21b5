package gateway

import "context"

// 決済ゲートウェイへの窓口。
// グローバルには持たず、usecaseへDIする（テストで差し替えるため）。
type PaymentGateway interface {
	// 金額は最小通貨単位（パイサ）。ゲートウェイ側の注文IDを返す。
	CreateIntent(ctx context.Context, amountMinor int64, currency string, receipt string, notes map[string]interface{}) (string, error)
}
