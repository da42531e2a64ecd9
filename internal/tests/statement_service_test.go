package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newStatementService(store *memory.Store) *services.StatementService {
	return services.NewStatementService(memory.NewAccountRepository(store), memory.NewTransactionRepository(store))
}

func day(dayOfMonth, hour int) time.Time {
	return time.Date(2025, time.March, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

// seedStatementFixture installs a three-day ledger whose entries sum to the
// account's current balance of 130:
//
//	Mar 10: +100, -20   (30 ->  80 end of day... initial 0? see below)
//	Mar 11: +50
//	Mar 12: -30, +30
//
// 0 +100 -20 +50 -30 +30 = 130.
func seedStatementFixture(store *memory.Store) domain.Account {
	account := store.SeedAccount(domain.Account{
		ID:          "acc-stmt",
		UserID:      "usr-1",
		AccountType: domain.AccountTypeChecking,
		Balance:     decimal.RequireFromString("130"),
	})

	entries := []struct {
		txType domain.TransactionType
		amount string
		at     time.Time
	}{
		{domain.TransactionTypeCredit, "100", day(10, 9)},
		{domain.TransactionTypeDebit, "20", day(10, 15)},
		{domain.TransactionTypeCredit, "50", day(11, 12)},
		{domain.TransactionTypeDebit, "30", day(12, 8)},
		{domain.TransactionTypeCredit, "30", day(12, 18)},
	}
	for _, entry := range entries {
		store.SeedTransaction(domain.Transaction{
			AccountID: account.ID,
			Type:      entry.txType,
			Amount:    decimal.RequireFromString(entry.amount),
			CreatedAt: entry.at,
		})
	}
	return account
}

func statementQuery(accountID string) models.StatementQuery {
	return models.StatementQuery{
		AccountID: accountID,
		StartDate: day(10, 0),
		EndDate:   day(13, 0),
		Page:      1,
		PageSize:  20,
	}
}

func TestStatementServiceForeignAccountDenied(t *testing.T) {
	store := memory.NewStore()
	account := seedStatementFixture(store)
	svc := newStatementService(store)

	_, err := svc.GetStatement(context.Background(), "usr-2", statementQuery(account.ID))
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign account, got %v", err)
	}
}

func TestStatementServiceDayBucketsCarryBalances(t *testing.T) {
	store := memory.NewStore()
	account := seedStatementFixture(store)
	svc := newStatementService(store)

	response, err := svc.GetStatement(context.Background(), "usr-1", statementQuery(account.ID))
	if err != nil {
		t.Fatalf("get statement: %v", err)
	}

	days := response.Data.Days
	if len(days) != 3 {
		t.Fatalf("expected 3 day buckets, got %d", len(days))
	}

	expected := []struct {
		date    string
		initial string
		final   string
		count   int
	}{
		{"2025-03-10", "0.00", "80.00", 2},
		{"2025-03-11", "80.00", "130.00", 1},
		{"2025-03-12", "130.00", "130.00", 2},
	}
	for i, want := range expected {
		got := days[i]
		if got.Date != want.date {
			t.Fatalf("day %d: expected date %s, got %s", i, want.date, got.Date)
		}
		if got.InitialBalance != want.initial || got.FinalBalance != want.final {
			t.Fatalf("day %s: expected balances %s -> %s, got %s -> %s", want.date, want.initial, want.final, got.InitialBalance, got.FinalBalance)
		}
		if len(got.Transactions) != want.count {
			t.Fatalf("day %s: expected %d entries, got %d", want.date, want.count, len(got.Transactions))
		}
	}

	if response.Data.TotalPages != 1 {
		t.Fatalf("expected a single page, got %d", response.Data.TotalPages)
	}
}

func TestStatementServicePagesConcatenateToFullRange(t *testing.T) {
	store := memory.NewStore()
	account := seedStatementFixture(store)
	svc := newStatementService(store)

	full, err := svc.GetStatement(context.Background(), "usr-1", statementQuery(account.ID))
	if err != nil {
		t.Fatalf("unpaged statement: %v", err)
	}

	var pagedIDs []string
	for page := 1; ; page++ {
		query := statementQuery(account.ID)
		query.Page = page
		query.PageSize = 2

		response, err := svc.GetStatement(context.Background(), "usr-1", query)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if response.Data.TotalPages != 3 {
			t.Fatalf("expected 3 pages of size 2, got %d", response.Data.TotalPages)
		}
		for _, bucket := range response.Data.Days {
			for _, record := range bucket.Transactions {
				pagedIDs = append(pagedIDs, record.ID)
			}
		}
		if page == response.Data.TotalPages {
			break
		}
	}

	var fullIDs []string
	for _, bucket := range full.Data.Days {
		for _, record := range bucket.Transactions {
			fullIDs = append(fullIDs, record.ID)
		}
	}

	if len(fullIDs) != len(pagedIDs) {
		t.Fatalf("expected %d entries across pages, got %d", len(fullIDs), len(pagedIDs))
	}
	for i := range fullIDs {
		if fullIDs[i] != pagedIDs[i] {
			t.Fatalf("page concatenation diverges at %d: %s vs %s", i, fullIDs[i], pagedIDs[i])
		}
	}
}

func TestStatementServiceLaterPageStartsFromRolledBalance(t *testing.T) {
	store := memory.NewStore()
	account := seedStatementFixture(store)
	svc := newStatementService(store)

	query := statementQuery(account.ID)
	query.Page = 2
	query.PageSize = 2

	response, err := svc.GetStatement(context.Background(), "usr-1", query)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}

	// Page 2 holds the Mar 11 credit and the Mar 12 debit; the balance rolls
	// in from page 1's entries.
	days := response.Data.Days
	if len(days) != 2 {
		t.Fatalf("expected 2 buckets on page 2, got %d", len(days))
	}
	if days[0].InitialBalance != "80.00" {
		t.Fatalf("expected page 2 to open at 80.00, got %s", days[0].InitialBalance)
	}
	if days[1].FinalBalance != "100.00" {
		t.Fatalf("expected page 2 to close at 100.00, got %s", days[1].FinalBalance)
	}
}

func TestStatementServiceTypeFilter(t *testing.T) {
	store := memory.NewStore()
	account := seedStatementFixture(store)
	svc := newStatementService(store)

	credit := domain.TransactionTypeCredit
	query := statementQuery(account.ID)
	query.Type = &credit

	response, err := svc.GetStatement(context.Background(), "usr-1", query)
	if err != nil {
		t.Fatalf("filtered statement: %v", err)
	}

	total := 0
	for _, bucket := range response.Data.Days {
		for _, record := range bucket.Transactions {
			if record.Type != "credit" {
				t.Fatalf("filter must exclude %s entries", record.Type)
			}
			total++
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 credit entries, got %d", total)
	}
}
