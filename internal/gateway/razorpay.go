package gateway

import (
	"context"
	"errors"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client *razorpay.Client
}

// DI
func NewRazorpayGateway(keyID string, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (g *RazorpayGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, receipt string, notes map[string]interface{}) (string, error) {
	//SDKはcontext未対応
	_ = ctx

	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", errors.New("gateway response missing order id")
	}
	return id, nil
}
