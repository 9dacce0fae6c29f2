package sheets

import "github.com/tallyho/tallyho/internal/model"

// CategoryTotal aggregates the transactions of one category.
type CategoryTotal struct {
	Category model.Category
	Count    int
	Total    float64
}

// Summarize totals transactions per category. The result lists every given
// category in the given order, including ones with no transactions, so the
// report layout stays stable as categories fill up.
func Summarize(txns []model.Transaction, categories []model.Category) []CategoryTotal {
	byCategory := make(map[model.Category]*CategoryTotal, len(categories))
	out := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		out[i] = CategoryTotal{Category: c}
		byCategory[c] = &out[i]
	}

	for _, tx := range txns {
		agg, ok := byCategory[tx.Category]
		if !ok {
			// Transaction outside the given category list; skip rather
			// than invent a row for it.
			continue
		}
		agg.Count++
		agg.Total += tx.Amount
	}

	return out
}
