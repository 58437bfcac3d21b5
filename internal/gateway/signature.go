package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// webhook署名の検証。
// 署名はraw bodyそのもの（再シリアライズ禁止）に対するHMAC-SHA256のhex。
// 比較は必ず定数時間で行う。
func VerifyWebhookSignature(rawBody []byte, signature string, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
