// Package history keeps a bounded log of recent calculations, newest first.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-calculator/pkg/loans"
)

// Entry summarizes one calculation. The schedule is not kept.
type Entry struct {
	ID             string              `json:"id"`
	Timestamp      time.Time           `json:"timestamp"`
	LoanType       string              `json:"loanType,omitempty"`
	Principal      float64             `json:"principal"`
	LoanRatio      float64             `json:"loanRatio"`
	AnnualRate     float64             `json:"annualRate"`
	TermYears      float64             `json:"termYears"`
	GraceMonths    int                 `json:"graceMonths"`
	Method         loans.PaymentMethod `json:"method"`
	MonthlyPayment *float64            `json:"monthlyPayment"`
	TotalInterest  float64             `json:"totalInterest"`
	TotalPayment   float64             `json:"totalPayment"`
	APR            float64             `json:"apr"`
}

// NewEntry builds a history entry for a finished calculation.
func NewEntry(params loans.LoanParameters, result *loans.CalculationResult, now time.Time) Entry {
	return Entry{
		ID:             uuid.NewString(),
		Timestamp:      now.UTC(),
		LoanType:       params.Type,
		Principal:      params.Principal,
		LoanRatio:      params.LoanRatio,
		AnnualRate:     params.AnnualRate,
		TermYears:      params.TermYears,
		GraceMonths:    result.GraceMonths,
		Method:         params.Method,
		MonthlyPayment: result.MonthlyPayment,
		TotalInterest:  result.TotalInterest,
		TotalPayment:   result.TotalPayment,
		APR:            result.APR,
	}
}

// Store persists history entries.
type Store interface {
	// Append records an entry, evicting the oldest beyond capacity.
	Append(ctx context.Context, entry Entry) error
	// List returns the entries newest first.
	List(ctx context.Context) ([]Entry, error)
	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewMemoryStore creates a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryStore{capacity: capacity}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	return nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}
