package request

import "github.com/shopspring/decimal"

type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}
