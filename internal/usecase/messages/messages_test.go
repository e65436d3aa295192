package messages

import (
	"testing"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnnouncementEscapesProjectName(t *testing.T) {
	deal := &domain.Deal{
		ID:      7,
		Amount:  decimal.RequireFromString("1.5"),
		Summary: "Project Name: <script>Rocket & Co</script>\nmore",
	}

	text := Announcement(deal)

	assert.Contains(t, text, "&lt;script&gt;Rocket &amp; Co&lt;/script&gt;")
	assert.Contains(t, text, "1.5 ETH")
	assert.Contains(t, text, "/deal_7")
	assert.NotContains(t, text, "<script>")
}

func TestRequesterApprovedIncludesTxHash(t *testing.T) {
	deal := &domain.Deal{ID: 3, Amount: decimal.NewFromInt(2), Summary: "Rocket"}

	text := RequesterApproved(deal, "0xabc")

	assert.Contains(t, text, "<code>0xabc</code>")
	assert.Contains(t, text, "Rocket")
}

func TestGroupMessagesFallBackToDealNumber(t *testing.T) {
	deal := &domain.Deal{ID: 9, Amount: decimal.NewFromInt(1)}

	assert.Contains(t, GroupRejected(deal, "bob"), "Deal #9")
	assert.Contains(t, GroupApproved(deal, "bob", "0x1"), "by bob")
}
