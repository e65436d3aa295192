package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
)

type Transfer struct {
	Address string
	Amount  decimal.Decimal
	TxHash  string
}

// PaymentExecutor records every send. BeforeSend, when set, runs inside Send
// before the transfer is recorded and can block or fail it.
type PaymentExecutor struct {
	mu         sync.Mutex
	Balance    decimal.Decimal
	BalanceErr error
	BeforeSend func() error
	transfers  []Transfer
}

func NewPaymentExecutor(balance string) *PaymentExecutor {
	return &PaymentExecutor{Balance: decimal.RequireFromString(balance)}
}

func (p *PaymentExecutor) GetTreasuryBalance(context.Context) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.BalanceErr != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, p.BalanceErr)
	}
	return p.Balance, nil
}

func (p *PaymentExecutor) Send(_ context.Context, address string, amount decimal.Decimal) (string, error) {
	p.mu.Lock()
	hook := p.BeforeSend
	p.mu.Unlock()
	if hook != nil {
		if err := hook(); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	txHash := fmt.Sprintf("0xtx%d", len(p.transfers)+1)
	p.transfers = append(p.transfers, Transfer{Address: address, Amount: amount, TxHash: txHash})
	p.Balance = p.Balance.Sub(amount)
	return txHash, nil
}

func (p *PaymentExecutor) Transfers() []Transfer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Transfer(nil), p.transfers...)
}

type Notification struct {
	To   domain.Recipient
	Text string
}

// Notifier records delivered messages. Hook, when set, runs before recording.
type Notifier struct {
	mu   sync.Mutex
	Hook func(to domain.Recipient) error
	sent []Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Publish(_ context.Context, to domain.Recipient, text string) error {
	n.mu.Lock()
	hook := n.Hook
	n.mu.Unlock()
	if hook != nil {
		if err := hook(to); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNotifyFailed, err)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, Notification{To: to, Text: text})
	return nil
}

func (n *Notifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

func (n *Notifier) SentTo(to domain.Recipient) []Notification {
	var out []Notification
	for _, msg := range n.Sent() {
		if msg.To == to {
			out = append(out, msg)
		}
	}
	return out
}

type EventPublisher struct {
	mu     sync.Mutex
	Err    error
	events []domain.DealEvent
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (e *EventPublisher) PublishDealEvent(_ context.Context, event domain.DealEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.events = append(e.events, event)
	return nil
}

func (e *EventPublisher) Events() []domain.DealEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.DealEvent(nil), e.events...)
}
