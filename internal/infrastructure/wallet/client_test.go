package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	walletRequest "github.com/LavaJover/shvark-deal-service/internal/delivery/http/dto/wallet/request"
	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetTreasuryBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/treasury/balance", r.URL.Path)
		_, _ = w.Write([]byte(`{"address":"0xdao","currency":"ETH","balance":"5.25"}`))
	}))
	defer srv.Close()

	c := NewHTTPWalletClient(srv.URL+"/", time.Second)
	balance, err := c.GetTreasuryBalance(context.Background())

	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("5.25")))
}

func TestSendPostsTransfer(t *testing.T) {
	var got walletRequest.TransferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/treasury/transfers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"tx_hash":"0xfeed","to":"` + got.To + `"}`))
	}))
	defer srv.Close()

	c := NewHTTPWalletClient(srv.URL, time.Second)
	txHash, err := c.Send(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", decimal.RequireFromString("2"))

	require.NoError(t, err)
	require.Equal(t, "0xfeed", txHash)
	require.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", got.To)
	require.True(t, got.Amount.Equal(decimal.NewFromInt(2)))
}

func TestSendSurfacesWalletError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"error":"nonce too low"}`))
	}))
	defer srv.Close()

	c := NewHTTPWalletClient(srv.URL, time.Second)
	_, err := c.Send(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", decimal.NewFromInt(1))

	require.ErrorIs(t, err, domain.ErrPaymentFailed)
	require.ErrorContains(t, err, "nonce too low")
}

func TestSendRejectsMissingTxHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPWalletClient(srv.URL, time.Second)
	_, err := c.Send(context.Background(), "0x52908400098527886E0F7030069857D2E4169EE7", decimal.NewFromInt(1))

	require.ErrorIs(t, err, domain.ErrPaymentFailed)
}

func TestBalanceUnknownErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPWalletClient(srv.URL, time.Second)
	_, err := c.GetTreasuryBalance(context.Background())

	require.ErrorIs(t, err, domain.ErrPaymentFailed)
	require.ErrorContains(t, err, "status 500")
}
