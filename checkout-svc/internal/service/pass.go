package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultPassGenerator renders the QR code door staff scan to verify a
// settled order.
type DefaultPassGenerator struct {
	BaseURL string
}

func (g DefaultPassGenerator) Generate(orderID string) ([]byte, error) {
	passData := fmt.Sprintf("%s/pass.html?order_id=%s", g.BaseURL, orderID)
	return qrcode.Encode(passData, qrcode.Medium, 256)
}

var _ PassGenerator = (*DefaultPassGenerator)(nil)
