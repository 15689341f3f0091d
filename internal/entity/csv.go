package entity

// CSVPreparation holds one parsed CSV between prepare and process.
// Read-only after creation.
type CSVPreparation struct {
	Filename string
	Columns  []string
	Records  [][]string
}

// Column returns the cell values of the named column in row order.
// Rows shorter than the header contribute an empty cell.
func (p *CSVPreparation) Column(name string) ([]string, bool) {
	idx := -1
	for i, col := range p.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	cells := make([]string, len(p.Records))
	for i, rec := range p.Records {
		if idx < len(rec) {
			cells[i] = rec[idx]
		}
	}
	return cells, true
}

// HasColumn reports whether the named header exists.
func (p *CSVPreparation) HasColumn(name string) bool {
	_, ok := p.Column(name)
	return ok
}
