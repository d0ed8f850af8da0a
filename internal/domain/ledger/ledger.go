package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
)

// Ledger is a user's transaction log, newest first. It only ever grows at the front.
type Ledger []models.Transaction

// Prepend returns a new ledger with tx as its newest entry
func (l Ledger) Prepend(tx models.Transaction) Ledger {
	out := make(Ledger, 0, len(l)+1)
	out = append(out, tx)
	return append(out, l...)
}

// Filter returns the entries of the given type; an empty type keeps everything
func (l Ledger) Filter(typ models.TransactionType) Ledger {
	out := make(Ledger, 0, len(l))
	for _, tx := range l {
		if typ == "" || tx.Type == typ {
			out = append(out, tx)
		}
	}
	return out
}

// Net is deposits minus payments over the whole log
func (l Ledger) Net() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l {
		switch tx.Type {
		case models.TransactionDeposit:
			total = total.Add(tx.Amount)
		case models.TransactionPayment:
			total = total.Sub(tx.Amount)
		}
	}
	return total
}
