// Package export renders the projected cash-flow series into the CSV
// document the presentation layer downloads: one row per horizon year,
// every cell quoted, prefixed with a UTF-8 BOM so spreadsheet tools pick
// up the Japanese headers.
package export

import (
	"strconv"
	"strings"

	"lifeplan/internal/core"
)

// utf8BOM keeps Excel from misreading the multibyte headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CashFlowCSV renders the full export: year, age, per-book event columns,
// one amount column per line item of both income and expense books, and
// the four derived summary columns.
func CashFlowCSV(in core.Inputs, series []core.CashFlowYear) []byte {
	headers := []string{"年度", "年齢", "イベント（個人）", "イベント（法人）"}
	itemColumns := [][]core.LineItem{
		in.Income.Personal,
		in.Income.Corporate,
		in.Expenses.Personal,
		in.Expenses.Corporate,
	}
	for _, items := range itemColumns {
		for _, it := range items {
			headers = append(headers, it.Name+"（万円）")
		}
	}
	headers = append(headers,
		"個人収支（万円）", "個人総資産（万円）", "法人収支（万円）", "法人総資産（万円）")

	var b strings.Builder
	b.Write(utf8BOM)
	// The header row goes out unquoted; only data cells are quoted.
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')

	for _, cf := range series {
		row := []string{
			strconv.Itoa(cf.Year),
			strconv.Itoa(cf.Age),
			LifeEvents(in.Household, cf.Year, core.BookPersonal),
			LifeEvents(in.Household, cf.Year, core.BookCorporate),
		}
		for _, items := range itemColumns {
			for _, it := range items {
				row = append(row, formatAmount(it.Amount(cf.Year)))
			}
		}
		row = append(row,
			formatAmount(cf.PersonalBalance),
			formatAmount(cf.PersonalTotalAssets),
			formatAmount(cf.CorporateBalance),
			formatAmount(cf.CorporateTotalAssets))
		writeRow(&b, row)
	}

	return []byte(b.String())
}

// writeRow quotes every data cell, text or numeric, matching the export
// format the original product produced.
func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(core.Round1(v), 'f', -1, 64)
}
