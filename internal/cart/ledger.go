package cart

import (
	"errors"
	"fmt"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrMissingID       = errors.New("cart line needs an id")
)

// Ledger is the ordered set of cart lines. It is not safe for concurrent
// use; the owning session serializes access.
type Ledger struct {
	lines []*Line
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Restore builds a ledger from a snapshot, dropping lines that are not positive.
func Restore(lines []Line) *Ledger {
	l := NewLedger()
	for _, line := range lines {
		if line.ID == "" || line.Quantity <= 0 {
			continue
		}
		line := line
		line.LineTotal = line.UnitPrice * int64(line.Quantity)
		l.lines = append(l.lines, &line)
	}
	return l
}

func (l *Ledger) find(id string) (int, *Line) {
	for i, line := range l.lines {
		if line.ID == id {
			return i, line
		}
	}
	return -1, nil
}

// Add appends a line, or sums quantities into an existing line with the same id.
func (l *Ledger) Add(line Line) error {
	if line.ID == "" {
		return ErrMissingID
	}
	if line.Quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, line.Quantity)
	}

	if _, existing := l.find(line.ID); existing != nil {
		existing.Quantity += line.Quantity
		existing.LineTotal = existing.UnitPrice * int64(existing.Quantity)
		return nil
	}

	line.LineTotal = line.UnitPrice * int64(line.Quantity)
	l.lines = append(l.lines, &line)
	return nil
}

// UpdateQuantity sets a line's quantity and applies the patch in the same
// step. A quantity at or below zero removes the line; removed reports that.
func (l *Ledger) UpdateQuantity(id string, qty int, patch *Patch) (removed bool, err error) {
	i, line := l.find(id)
	if line == nil {
		return false, ErrLineNotFound
	}

	if qty <= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
		return true, nil
	}

	line.Quantity = qty
	if patch != nil {
		if patch.Portion != nil {
			line.Portion = *patch.Portion
		}
		if patch.UnitPrice != nil && *patch.UnitPrice >= 0 {
			line.UnitPrice = *patch.UnitPrice
		}
	}
	line.LineTotal = line.UnitPrice * int64(line.Quantity)
	return false, nil
}

func (l *Ledger) Remove(id string) error {
	i, line := l.find(id)
	if line == nil {
		return ErrLineNotFound
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
	return nil
}

func (l *Ledger) Clear() {
	l.lines = nil
}

// Total is Σ unit price × quantity. Checkout surcharges are not included.
func (l *Ledger) Total() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// TotalItems is Σ quantity.
func (l *Ledger) TotalItems() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

// Line returns a copy of one line.
func (l *Ledger) Line(id string) (Line, bool) {
	_, line := l.find(id)
	if line == nil {
		return Line{}, false
	}
	return *line, true
}

// Lines returns copies in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, 0, len(l.lines))
	for _, line := range l.lines {
		out = append(out, *line)
	}
	return out
}

// Summary is the read view served to clients and written to snapshots.
type Summary struct {
	Lines      []Line `json:"lines"`
	Total      int64  `json:"total"`
	TotalItems int    `json:"total_items"`
}

func (l *Ledger) Summary() Summary {
	return Summary{
		Lines:      l.Lines(),
		Total:      l.Total(),
		TotalItems: l.TotalItems(),
	}
}
