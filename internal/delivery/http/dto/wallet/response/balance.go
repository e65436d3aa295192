package response

import "github.com/shopspring/decimal"

type BalanceResponse struct {
	Address  string          `json:"address"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
