// Package statement renders the per-account statement artifact: an account
// snapshot followed by its balance-affecting journal entries. Rendering is
// pure; writing the artifact is the caller's concern.
package statement

import (
	"fmt"
	"strings"
	"time"

	"bank/internal/domain"
)

func Render(account *domain.Account, entries []domain.Transaction, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "==================== ACCOUNT STATEMENT ====================\n")
	fmt.Fprintf(&b, "Account Number : %d\n", account.Number)
	fmt.Fprintf(&b, "Account Holder : %s\n", account.Name)
	fmt.Fprintf(&b, "Email          : %s\n", account.Email)
	fmt.Fprintf(&b, "Phone          : %s\n", account.Phone)
	fmt.Fprintf(&b, "Status         : %s\n", statusLabel(account.Status))
	fmt.Fprintf(&b, "Opened         : %s\n", account.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Generated      : %s\n", generatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Current Balance: $%s\n", account.Balance.StringFixed(2))
	fmt.Fprintf(&b, "-----------------------------------------------------------\n")
	fmt.Fprintf(&b, "%-20s %-16s %12s %12s %8s\n", "Date", "Type", "Amount", "Balance", "Related")
	fmt.Fprintf(&b, "-----------------------------------------------------------\n")

	for _, e := range entries {
		related := "-"
		if e.RelatedAccount != 0 {
			related = fmt.Sprintf("%d", e.RelatedAccount)
		}
		fmt.Fprintf(&b, "%-20s %-16s %12s %12s %8s\n",
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			e.Type,
			"$"+e.Amount.StringFixed(2),
			"$"+e.BalanceAfter.StringFixed(2),
			related)
		if e.Description != "" {
			fmt.Fprintf(&b, "    %s\n", e.Description)
		}
	}

	fmt.Fprintf(&b, "-----------------------------------------------------------\n")
	fmt.Fprintf(&b, "Total entries: %d\n", len(entries))
	return b.String()
}

func statusLabel(s domain.AccountStatus) string {
	switch s {
	case domain.StatusActive:
		return "active"
	case domain.StatusSuspended:
		return "suspended"
	case domain.StatusClosed:
		return "closed"
	}
	return "unknown"
}
