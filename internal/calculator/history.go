package calculator

import "sync"

// History is the bounded, process-lifetime list of recent calculations.
// Newest first. It is never persisted; the saved-tariff store is the
// durable surface.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []TariffCalculation
}

// NewHistory builds a history capped at limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 10
	}
	return &History{limit: limit}
}

// Push prepends the calculation and truncates to the cap.
func (h *History) Push(calc TariffCalculation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]TariffCalculation{calc}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// List returns a copy of the current entries, newest first.
func (h *History) List() []TariffCalculation {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]TariffCalculation, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the current entry count.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
