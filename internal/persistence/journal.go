package persistence

import (
	"fmt"
	"log/slog"

	"github.com/talgya/mini-park/internal/engine"
	"github.com/talgya/mini-park/internal/finances"
	"github.com/talgya/mini-park/internal/messages"
)

// Journal collects what happens in a running game and writes it to the
// ledger in batches. It must be used from the goroutine that steps the
// simulation.
type Journal struct {
	db      *DB
	sim     *engine.Simulation
	pending batch
}

// NewJournal hooks a journal into the simulation. The hooks survive loading
// another game into sim.
func NewJournal(db *DB, sim *engine.Simulation) *Journal {
	j := &Journal{db: db, sim: sim}
	sim.OnMessage = j.recordMessage
	sim.OnTransaction = j.recordTransaction
	onDay := sim.OnDay
	sim.OnDay = func(st engine.Stats) {
		j.pending.days = append(j.pending.days, st)
		if onDay != nil {
			onDay(st)
		}
	}
	return j
}

func (j *Journal) recordMessage(m messages.Message) {
	j.pending.messages = append(j.pending.messages, MessageRow{
		Kind:  m.Kind.String(),
		Day:   m.Date.Day,
		Month: m.Date.Month,
		Year:  m.Date.Year,
	})
}

func (j *Journal) recordTransaction(t finances.Transaction) {
	d := j.sim.Dates.Current()
	j.pending.transactions = append(j.pending.transactions, TransactionRow{
		Category: string(t.Category),
		Amount:   t.Amount,
		Day:      d.Day,
		Month:    d.Month,
		Year:     d.Year,
	})
}

// Pending returns the number of rows waiting for the next flush.
func (j *Journal) Pending() int {
	return len(j.pending.messages) + len(j.pending.transactions) + len(j.pending.days)
}

// Flush writes the pending rows. They are kept for the next attempt when
// the write fails.
func (j *Journal) Flush() error {
	n := j.Pending()
	if err := j.db.write(&j.pending); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	j.pending = batch{}
	if n > 0 {
		slog.Debug("ledger flushed", "rows", n)
	}
	return nil
}
