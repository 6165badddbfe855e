package domain

// Table is a presentation-ready grid handed to a renderer
type Table struct {
	Headers []string
	Rows    [][]interface{}
	// CurrencyColumns holds indices of columns rendered as money
	CurrencyColumns []int
	Currency        string
}

func (t Table) IsCurrencyColumn(i int) bool {
	for _, c := range t.CurrencyColumns {
		if c == i {
			return true
		}
	}
	return false
}
