package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"0x52908400098527886E0F7030069857D2E4169EE7",
		"0x0000000000000000000000000000000000000000",
	}
	for _, address := range valid {
		assert.NoError(t, ValidateAddress(address), address)
	}

	invalid := []string{
		"",
		"52908400098527886E0F7030069857D2E4169EE7",
		"0x52908400098527886E0F7030069857D2E4169EE",
		"0x52908400098527886E0F7030069857D2E4169EE77",
		"0xZ2908400098527886E0F7030069857D2E4169EE7",
		" 0x52908400098527886E0F7030069857D2E4169EE7",
	}
	for _, address := range invalid {
		assert.ErrorIs(t, ValidateAddress(address), ErrInvalidAddress, address)
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("0.000000000000000001")))
	assert.ErrorIs(t, ValidateAmount(decimal.Zero), ErrNonPositiveAmount)
	assert.ErrorIs(t, ValidateAmount(decimal.NewFromInt(-1)), ErrNonPositiveAmount)
}

func TestProjectName(t *testing.T) {
	cases := map[string]string{
		"Project Name: Rocket\nrest":       "Rocket",
		"- **Project Name**: Moon Base\nx": "Moon Base",
		"— Solar Sails":                    "Solar Sails",
		"Plain first line":                 "Plain first line",
		"":                                 "Deal #12",
		"   \nsecond line only":            "Deal #12",
	}
	for summary, want := range cases {
		deal := &Deal{ID: 12, Summary: summary}
		assert.Equal(t, want, deal.ProjectName(), summary)
	}
}

func TestDealStatus(t *testing.T) {
	assert.True(t, DealPending.Valid())
	assert.False(t, DealPending.Terminal())
	assert.True(t, DealApproved.Terminal())
	assert.True(t, DealRejected.Terminal())
	assert.False(t, DealStatus("pending_review").Valid())
}
