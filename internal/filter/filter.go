// Package filter removes self-transfers and ignored counterparties from the
// canonical transaction set.
package filter

import (
	"strings"

	"github.com/mjzilver/BankOverview/internal/core"
)

// CollectOwnAccounts unions every own-account identifier seen anywhere in
// the batch. This is a separate pass on purpose: with multiple files loaded,
// a transfer in file A to an account that only appears as "own" in file B
// must still be recognized as a self-transfer, regardless of load order.
func CollectOwnAccounts(txs []core.Transaction) map[string]struct{} {
	own := make(map[string]struct{})
	for _, tx := range txs {
		if tx.OwnAccount != "" {
			own[tx.OwnAccount] = struct{}{}
		}
	}
	return own
}

// Apply drops transactions whose counterparty account is one of the user's
// own accounts, and transactions whose counterparty name contains any of the
// ignore patterns (case-insensitive substring). The two predicates are
// independent; both are always applied.
func Apply(txs []core.Transaction, own map[string]struct{}, ignorePatterns []string) []core.Transaction {
	patterns := make([]string, 0, len(ignorePatterns))
	for _, p := range ignorePatterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			patterns = append(patterns, p)
		}
	}

	kept := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.CounterpartyAccount != "" {
			if _, selfTransfer := own[tx.CounterpartyAccount]; selfTransfer {
				continue
			}
		}
		if matchesAny(tx.Counterparty, patterns) {
			continue
		}
		kept = append(kept, tx)
	}
	return kept
}

func matchesAny(counterparty string, patterns []string) bool {
	name := strings.ToLower(counterparty)
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}
