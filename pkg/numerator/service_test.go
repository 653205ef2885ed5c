package numerator

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/id"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates a per-(company, voucher type) counter table.
type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{values: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return &mockRow{err: m.err}
	}

	key := ""
	if len(args) >= 2 {
		key = fmt2(args[0]) + "/" + fmt2(args[1])
	}

	if strings.Contains(sql, "INSERT INTO") {
		m.values[key]++
		return &mockRow{val: m.values[key]}
	}

	// Peek query: current value + 1 without allocating
	return &mockRow{val: m.values[key] + 1}
}

func fmt2(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case id.ID:
		return t.String()
	default:
		return ""
	}
}

func TestNext_StartsAtOne(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	companyID := id.New()

	num, err := svc.Next(ctx, companyID, "SALES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 1 {
		t.Errorf("expected 1, got %d", num)
	}

	num, err = svc.Next(ctx, companyID, "SALES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 2 {
		t.Errorf("expected 2, got %d", num)
	}
}

func TestNext_IndependentPerVoucherType(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	companyID := id.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.Next(ctx, companyID, "SALES"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	num, err := svc.Next(ctx, companyID, "PURCHASE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 1 {
		t.Errorf("expected PURCHASE sequence to start at 1, got %d", num)
	}
}

func TestNext_IndependentPerCompany(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()

	first := id.New()
	second := id.New()

	if _, err := svc.Next(ctx, first, "RECEIPT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Next(ctx, first, "RECEIPT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.Next(ctx, second, "RECEIPT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 1 {
		t.Errorf("expected second company to start at 1, got %d", num)
	}
}

func TestPeek_DoesNotAllocate(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	companyID := id.New()

	num, err := svc.Peek(ctx, companyID, "PAYMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 1 {
		t.Errorf("expected peek 1 on empty sequence, got %d", num)
	}

	// Peeking twice must not advance the counter
	num, err = svc.Peek(ctx, companyID, "PAYMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 1 {
		t.Errorf("expected peek to stay at 1, got %d", num)
	}

	allocated, err := svc.Next(ctx, companyID, "PAYMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allocated != 1 {
		t.Errorf("expected allocation 1, got %d", allocated)
	}

	num, err = svc.Peek(ctx, companyID, "PAYMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 2 {
		t.Errorf("expected peek 2 after allocation, got %d", num)
	}
}

func TestNext_PropagatesQueryError(t *testing.T) {
	q := newMockQuerier()
	q.err = pgx.ErrNoRows
	svc := New(q)

	_, err := svc.Next(context.Background(), id.New(), "SALES")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
