// Package finances keeps the park's books. The people simulation only
// debits staff wages; other income and expenses are booked by callers.
package finances

import (
	"log/slog"

	"github.com/talgya/mini-park/internal/savegame"
)

// Category groups transactions.
type Category string

const (
	CategoryStaffWages Category = "staff_wages"
	CategoryRideRepair Category = "ride_repair"
)

// Transaction is one booking. Negative amounts are expenses.
type Transaction struct {
	Category Category `json:"category"`
	Amount   int64    `json:"amount"` // Cents.
}

// Manager holds the park's cash.
type Manager struct {
	Cash int64 // Cents.

	monthWages int64 // Wages paid in the current month.
	totalWages int64

	// OnTransaction is called for every booking.
	OnTransaction func(Transaction)
}

// NewManager creates a manager with the given starting cash.
func NewManager(startCash int64) *Manager {
	return &Manager{Cash: startCash}
}

// PayStaffWages debits amount cents of staff wages.
func (m *Manager) PayStaffWages(amount int64) {
	if amount == 0 {
		return
	}
	m.monthWages += amount
	m.totalWages += amount
	m.book(Transaction{Category: CategoryStaffWages, Amount: -amount})
}

// PayRepair debits the cost of a ride repair.
func (m *Manager) PayRepair(amount int64) {
	m.book(Transaction{Category: CategoryRideRepair, Amount: -amount})
}

func (m *Manager) book(t Transaction) {
	m.Cash += t.Amount
	if m.OnTransaction != nil {
		m.OnTransaction(t)
	}
}

// MonthWages returns the wages paid so far this month.
func (m *Manager) MonthWages() int64 {
	return m.monthWages
}

// TotalWages returns all wages ever paid.
func (m *Manager) TotalWages() int64 {
	return m.totalWages
}

// OnNewMonth closes the books of the previous month.
func (m *Manager) OnNewMonth() {
	slog.Info("monthly books", "cash", m.Cash, "wages", m.monthWages)
	m.monthWages = 0
}

const currentVersionFINA = 1

// Load reads the FINA pattern.
func (m *Manager) Load(ldr *savegame.Loader) {
	version := ldr.OpenPattern("FINA")
	switch version {
	case 0:
	case 1:
		m.Cash = ldr.GetInt64()
		m.monthWages = ldr.GetInt64()
		m.totalWages = ldr.GetInt64()
	default:
		ldr.VersionMismatch(version, currentVersionFINA)
	}
	ldr.ClosePattern()
}

// Save writes the FINA pattern.
func (m *Manager) Save(svr *savegame.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("FINA", currentVersionFINA)
	svr.PutInt64(m.Cash)
	svr.PutInt64(m.monthWages)
	svr.PutInt64(m.totalWages)
	svr.EndPattern()
}
