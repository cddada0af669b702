package entity

import "github.com/dukahub/dukaweb/pkg/apiv1"

// Archived reports whether a record was soft deleted (visible=false). Such records can be restored
// but not deleted again.
func Archived(r apiv1.Record) bool {
	visible, ok := r["visible"].(bool)
	return ok && !visible
}

func (d Debt) Balance() float64 {
	return d.Amount - d.Paid
}

func (d Debt) Settled() bool {
	return d.Balance() <= 0
}

type StockLevel string

const (
	OutOfStock StockLevel = "out of stock"
	LowStock   StockLevel = "low stock"
	InStock    StockLevel = "in stock"
)

// Level compares stock against the reorder threshold.
func (p Product) Level() StockLevel {
	switch {
	case p.Stock <= 0:
		return OutOfStock
	case p.Stock <= p.ReorderLevel:
		return LowStock
	default:
		return InStock
	}
}

func (p Product) Margin() float64 {
	return p.SellingPrice - p.BuyingPrice
}

// SecondAccountImpact is the effect a transfer has on the receiving account: the opposite of its
// impact on the first. Non-transfers don't touch a second account and return "".
func (t Transaction) SecondAccountImpact() string {
	if t.Type != "transfer" || t.SecondAccount.ID == "" {
		return ""
	}

	switch t.Impact {
	case "decrease":
		return "increase"
	case "increase":
		return "decrease"
	default:
		return ""
	}
}
