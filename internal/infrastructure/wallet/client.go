package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	walletRequest "github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/wallet/request"
	walletResponse "github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/wallet/response"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
)

// HTTPWalletClient talks to the wallet service that owns the treasury key.
type HTTPWalletClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPWalletClient(baseURL string, timeout time.Duration) *HTTPWalletClient {
	return &HTTPWalletClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPWalletClient) GetTreasuryBalance(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/treasury/balance", nil)
	if err != nil {
		return decimal.Zero, err
	}

	var balance walletResponse.BalanceResponse
	if err := c.do(req, &balance); err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance: %v", domain.ErrPaymentFailed, err)
	}
	return balance.Balance, nil
}

func (c *HTTPWalletClient) Send(ctx context.Context, address string, amount decimal.Decimal) (string, error) {
	body, err := json.Marshal(walletRequest.TransferRequest{To: address, Amount: amount})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/treasury/transfers", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var transfer walletResponse.TransferResponse
	if err := c.do(req, &transfer); err != nil {
		return "", fmt.Errorf("%w: transfer: %v", domain.ErrPaymentFailed, err)
	}
	if transfer.TxHash == "" {
		return "", fmt.Errorf("%w: transfer accepted without tx hash", domain.ErrPaymentFailed)
	}
	return transfer.TxHash, nil
}

func (c *HTTPWalletClient) do(req *http.Request, out any) error {
	response, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return json.Unmarshal(responseBodyBytes, out)
	}

	var errorResponse walletResponse.ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil || errorResponse.Error == "" {
		return fmt.Errorf("wallet service returned status %d", response.StatusCode)
	}
	return errors.New(errorResponse.Error)
}
