// Package messages renders the HTML texts sent through the notification channel.
package messages

import (
	"fmt"
	"html"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

func projectName(deal *domain.Deal) string {
	return html.EscapeString(deal.ProjectName())
}

func Announcement(deal *domain.Deal) string {
	return fmt.Sprintf("🚨 <b>NEW DEAL ALERT!</b> 🚨\n\n"+
		"💰 \"<b>%s</b>\" is asking for %s ETH.\n\n"+
		"Review it with /deal_%d and cast your decision.",
		projectName(deal), deal.Amount.String(), deal.ID)
}

func RequesterApproved(deal *domain.Deal, txHash string) string {
	return fmt.Sprintf("🎉 Your deal \"<b>%s</b>\" was approved and %s ETH has been sent.\n\nTransaction: <code>%s</code>",
		projectName(deal), deal.Amount.String(), html.EscapeString(txHash))
}

func RequesterRejected(deal *domain.Deal) string {
	return fmt.Sprintf("Your deal \"<b>%s</b>\" was reviewed and not funded this time.", projectName(deal))
}

func GroupApproved(deal *domain.Deal, reviewer, txHash string) string {
	return fmt.Sprintf("✅ Deal #%d \"<b>%s</b>\" funded with %s ETH by %s.\n\nTransaction: <code>%s</code>",
		deal.ID, projectName(deal), deal.Amount.String(), html.EscapeString(reviewer), html.EscapeString(txHash))
}

func GroupRejected(deal *domain.Deal, reviewer string) string {
	return fmt.Sprintf("❌ Deal #%d \"<b>%s</b>\" rejected by %s.", deal.ID, projectName(deal), html.EscapeString(reviewer))
}
