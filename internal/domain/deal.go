package domain

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DealStatus string

const (
	DealPending  DealStatus = "pending"
	DealApproved DealStatus = "approved"
	DealRejected DealStatus = "rejected"
)

func (s DealStatus) Valid() bool {
	switch s {
	case DealPending, DealApproved, DealRejected:
		return true
	}
	return false
}

func (s DealStatus) Terminal() bool {
	return s == DealApproved || s == DealRejected
}

type Deal struct {
	ID            int64
	RequesterID   int64
	RequesterName string
	Address       string
	Amount        decimal.Decimal
	Summary       string
	Status        DealStatus
	Announced     bool
	TxHash        string
	PayoutClaim   string
	DecidedBy     int64
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateAddress checks the funding destination is a 0x-prefixed 20-byte hex address.
func ValidateAddress(address string) error {
	if !addressPattern.MatchString(address) {
		return ErrInvalidAddress
	}
	return nil
}

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

// ProjectName is the first summary line with any "Project Name:" label stripped.
func (d *Deal) ProjectName() string {
	line := strings.TrimSpace(strings.SplitN(d.Summary, "\n", 2)[0])
	line = strings.TrimLeft(line, "-–— ")
	for _, label := range []string{"**Project Name**:", "Project Name:"} {
		line = strings.TrimPrefix(line, label)
	}
	line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
	if line == "" {
		return "Deal #" + strconv.FormatInt(d.ID, 10)
	}
	return line
}

type DealField string

const (
	FieldAnnounced DealField = "announced"
)

type DealRepository interface {
	CreateDeal(ctx context.Context, deal *Deal) error
	GetDealByID(ctx context.Context, dealID int64) (*Deal, error)
	// ListAll returns every deal, newest first.
	ListAll(ctx context.Context) ([]*Deal, error)
	ListByStatus(ctx context.Context, status DealStatus) ([]*Deal, error)
	// ListByStatusAndAnnounced returns matching deals, oldest first.
	ListByStatusAndAnnounced(ctx context.Context, status DealStatus, announced bool) ([]*Deal, error)
	// UpdateDealStatus moves from -> to only while no payout is in flight.
	// It returns ErrAlreadyDecided when the row is no longer in the from status.
	UpdateDealStatus(ctx context.Context, dealID int64, from, to DealStatus, decidedBy int64) (*Deal, error)
	UpdateDealField(ctx context.Context, dealID int64, field DealField, value any) error
	// MarkAnnounced flips announced false->true for a pending deal and reports whether it did.
	MarkAnnounced(ctx context.Context, dealID int64) (bool, error)
	ClaimPayout(ctx context.Context, dealID int64, token string) (bool, error)
	ReleasePayout(ctx context.Context, dealID int64, token string) error
	CompletePayout(ctx context.Context, dealID int64, token, txHash string, decidedBy int64) (*Deal, error)
	// ResetDeal reopens a deal only while its payout claim still equals expectedClaim.
	// It returns ErrPayoutInProgress when the claim changed in the meantime.
	ResetDeal(ctx context.Context, dealID int64, expectedClaim string) (*Deal, error)
}
