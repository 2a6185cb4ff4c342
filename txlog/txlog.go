// Package txlog keeps the in-memory transaction archive: one record per
// receipt-worthy economic action, whether the external publisher confirmed it
// or a local fallback hash was substituted.
package txlog

import (
	"sync"
	"time"
)

type Type string

const (
	TypeWager    Type = "wager"
	TypeTransfer Type = "transfer"
	TypeResolve  Type = "resolve"
	TypeEntryFee Type = "entry_fee"
	TypeMint     Type = "mint"
)

type Record struct {
	TxHash      string    `json:"txHash"`
	Type        Type      `json:"type"`
	FromAgent   string    `json:"fromAgent,omitempty"`
	ToAgent     string    `json:"toAgent,omitempty"`
	Amount      int64     `json:"amount"`
	Tick        int       `json:"tick"`
	Timestamp   time.Time `json:"timestamp"`
	BlockNumber int64     `json:"blockNumber,omitempty"`
}

type Log struct {
	mu      sync.Mutex
	records []Record
}

func New() *Log {
	return &Log{}
}

func (l *Log) Append(r Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Recent returns up to limit records, newest first.
func (l *Log) Recent(limit int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]Record, 0, limit)
	for i := len(l.records) - 1; i >= len(l.records)-limit; i-- {
		out = append(out, l.records[i])
	}
	return out
}

func (l *Log) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record{}, l.records...)
}

func (l *Log) ByType(t Type) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []Record{}
	for _, r := range l.records {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// TotalWagered sums the amounts of all wager records.
func (l *Log) TotalWagered() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, r := range l.records {
		if r.Type == TypeWager {
			total += r.Amount
		}
	}
	return total
}

func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}
