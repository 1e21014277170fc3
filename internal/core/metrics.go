package core

// NetAssetYear is the presentation-time net worth derivation for one year
// of one book. It is never stored in the projected series; recomputing it
// from the current liability items means liability edits show up without
// re-running the projection.
type NetAssetYear struct {
	Year        int     `json:"year"`
	TotalAssets float64 `json:"totalAssets"`
	Liabilities float64 `json:"liabilities"`
	NetAssets   float64 `json:"netAssets"`
}

// NetAssetSeries derives per-year net assets for a book: the projected
// total assets minus the sum of that book's liability amounts for the year.
func NetAssetSeries(series []CashFlowYear, liabilities ItemSet, book Book) []NetAssetYear {
	items := liabilities.Items(book)
	out := make([]NetAssetYear, len(series))
	for i, cf := range series {
		total := cf.PersonalTotalAssets
		if book == BookCorporate {
			total = cf.CorporateTotalAssets
		}
		owed := SumAt(items, cf.Year)
		out[i] = NetAssetYear{
			Year:        cf.Year,
			TotalAssets: total,
			Liabilities: owed,
			NetAssets:   Round1(total - owed),
		}
	}
	return out
}
