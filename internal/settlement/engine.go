// Package settlement turns final chip counts into profit and loss per player
// and a list of payments that zero out every balance.
package settlement

import (
	"sort"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// Input is one player's position at game end
type Input struct {
	PlayerID   string
	Name       string
	BuyIn      int64
	FinalChips int64
}

type party struct {
	id      string
	name    string
	balance int64
}

// Settle validates that chips are conserved and matches debtors against
// creditors greedily, largest first.
//
// Debtors are sorted most negative first and creditors largest first; ties keep
// input order. Each step pays min(|debt|, credit) and advances past whichever
// side reaches zero. This is the usual two-pointer heuristic and does not always
// produce the fewest possible payments, but it is deterministic for a given input.
//
// Settle never modifies its input.
func Settle(players []Input) (*models.Settlement, error) {
	var totalFinal, totalBuyIn int64
	results := make([]*models.PlayerResult, 0, len(players))
	for _, p := range players {
		totalFinal += p.FinalChips
		totalBuyIn += p.BuyIn
		results = append(results, &models.PlayerResult{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			BuyIn:      p.BuyIn,
			FinalChips: p.FinalChips,
			Balance:    p.FinalChips - p.BuyIn,
		})
	}

	// Chip counts are whole numbers, so conservation is exact equality
	if totalFinal != totalBuyIn {
		return nil, &BalanceMismatchError{
			TotalFinalChips: totalFinal,
			TotalBuyIn:      totalBuyIn,
		}
	}

	var debtors, creditors []*party
	for _, r := range results {
		switch {
		case r.Balance < 0:
			debtors = append(debtors, &party{id: r.PlayerID, name: r.Name, balance: r.Balance})
		case r.Balance > 0:
			creditors = append(creditors, &party{id: r.PlayerID, name: r.Name, balance: r.Balance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance < debtors[j].balance
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance > creditors[j].balance
	})

	transfers := make([]*models.Transfer, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := debtors[i]
		creditor := creditors[j]

		amount := min(-debtor.balance, creditor.balance)
		if amount > 0 {
			transfers = append(transfers, &models.Transfer{
				FromID: debtor.id,
				From:   debtor.name,
				ToID:   creditor.id,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.balance += amount
		creditor.balance -= amount

		if debtor.balance == 0 {
			i++
		}
		if creditor.balance == 0 {
			j++
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Balance > results[b].Balance
	})

	return &models.Settlement{
		Players:      results,
		Transactions: transfers,
	}, nil
}
