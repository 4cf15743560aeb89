package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/tests/testutil"
)

func TestJournalEntryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	expense := testDB.CreateTestAccount(ctx, "6000", "Heizkosten", domain.AccountTypeExpense)
	bank := testDB.CreateTestAccount(ctx, "1000", "Hausgeld-Konto", domain.AccountTypeAsset)

	entryRequest := dto.CreateEntryRequest{
		Date:        "2024-03-15",
		Description: "Heating oil delivery",
		Reference:   "INV-2024-001",
		CreatedBy:   "verwalter",
		Postings: []dto.PostingRequest{
			{AccountID: expense.ID.String(), Amount: "250.00", Side: "debit"},
			{AccountID: bank.ID.String(), Amount: "250.00", Side: "credit"},
		},
	}

	var entry dto.EntryResponse

	t.Run("create balanced entry", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/entries", entryRequest)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		decodeJSON(t, w, &entry)

		if entry.Date != "2024-03-15" {
			t.Errorf("expected date 2024-03-15, got %s", entry.Date)
		}
		if entry.IsReversed {
			t.Error("new entry must not be reversed")
		}
	})

	t.Run("fetch entry with postings", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/entries/"+entry.ID, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.EntryWithPostingsResponse
		decodeJSON(t, w, &resp)

		if len(resp.Postings) != 2 {
			t.Fatalf("expected 2 postings, got %d", len(resp.Postings))
		}
		for _, p := range resp.Postings {
			if p.Amount != "250.00" {
				t.Errorf("expected amount 250.00, got %s", p.Amount)
			}
		}
	})

	t.Run("unbalanced entry rejected", func(t *testing.T) {
		bad := entryRequest
		bad.Postings = []dto.PostingRequest{
			{AccountID: expense.ID.String(), Amount: "250.00", Side: "debit"},
			{AccountID: bank.ID.String(), Amount: "100.00", Side: "credit"},
		}

		w := doJSON(t, router, http.MethodPost, "/api/v1/entries", bad)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
		}
	})

	t.Run("account balance reflects postings", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/accounts/"+expense.ID.String()+"/balance", nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.BalanceResponse
		decodeJSON(t, w, &resp)

		if resp.Balance != "250.00" {
			t.Errorf("expected balance 250.00, got %s", resp.Balance)
		}
	})

	var reversal dto.EntryResponse

	t.Run("reverse entry", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/entries/"+entry.ID+"/reverse", dto.ReverseEntryRequest{
			Reason:    "wrong invoice",
			CreatedBy: "verwalter",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		decodeJSON(t, w, &reversal)

		if reversal.ReversalOfID == nil || *reversal.ReversalOfID != entry.ID {
			t.Errorf("expected reversal to point at %s", entry.ID)
		}

		w = doJSON(t, router, http.MethodGet, "/api/v1/entries/"+entry.ID, nil)
		var original dto.EntryWithPostingsResponse
		decodeJSON(t, w, &original)

		if !original.IsReversed {
			t.Error("expected original entry to be marked reversed")
		}
		if original.ReversedByID == nil || *original.ReversedByID != reversal.ID {
			t.Errorf("expected original to reference reversal %s", reversal.ID)
		}
	})

	t.Run("balance nets to zero after reversal", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/accounts/"+expense.ID.String()+"/balance", nil)

		var resp dto.BalanceResponse
		decodeJSON(t, w, &resp)

		if resp.Balance != "0.00" {
			t.Errorf("expected balance 0.00 after reversal, got %s", resp.Balance)
		}
	})

	t.Run("list entries by account", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/accounts/"+expense.ID.String()+"/entries", nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.ListEntriesResponse
		decodeJSON(t, w, &resp)

		// Original plus its reversal.
		if resp.Total != 2 {
			t.Errorf("expected 2 entries for account, got %d", resp.Total)
		}
	})

	t.Run("reversal entry can itself be reversed", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/entries/"+reversal.ID+"/reverse", dto.ReverseEntryRequest{
			Reason:    "invoice was correct after all",
			CreatedBy: "verwalter",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		w = doJSON(t, router, http.MethodGet, "/api/v1/accounts/"+expense.ID.String()+"/balance", nil)
		var resp dto.BalanceResponse
		decodeJSON(t, w, &resp)

		if resp.Balance != "250.00" {
			t.Errorf("expected balance 250.00 after re-reversal, got %s", resp.Balance)
		}
	})
}

func TestTrialBalance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	expense := testDB.CreateTestAccount(ctx, "6100", "Wasser", domain.AccountTypeExpense)
	receivable := testDB.CreateTestAccount(ctx, "1200", "Forderungen Hausgeld", domain.AccountTypeAsset)
	income := testDB.CreateTestAccount(ctx, "4000", "Hausgeld", domain.AccountTypeIncome)

	for _, req := range []dto.CreateEntryRequest{
		{
			Date:        "2024-06-01",
			Description: "Water bill",
			CreatedBy:   "verwalter",
			Postings: []dto.PostingRequest{
				{AccountID: expense.ID.String(), Amount: "120.00", Side: "debit"},
				{AccountID: receivable.ID.String(), Amount: "120.00", Side: "credit"},
			},
		},
		{
			Date:        "2024-06-15",
			Description: "Hausgeld June",
			CreatedBy:   "verwalter",
			Postings: []dto.PostingRequest{
				{AccountID: receivable.ID.String(), Amount: "300.00", Side: "debit"},
				{AccountID: income.ID.String(), Amount: "300.00", Side: "credit"},
			},
		},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/entries", req)
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create entry: %d %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/trial-balance?as_of=2024-12-31", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp dto.TrialBalanceResponse
	decodeJSON(t, w, &resp)

	if !resp.IsBalanced {
		t.Error("expected trial balance to be balanced")
	}
	if resp.TotalDebits != resp.TotalCredits {
		t.Errorf("totals differ: debits %s credits %s", resp.TotalDebits, resp.TotalCredits)
	}
	// 6100 nets to a 120.00 debit and 1200 to a 180.00 debit, against the
	// 300.00 credit on 4000.
	if resp.TotalDebits != "300.00" {
		t.Errorf("expected total debits 300.00, got %s", resp.TotalDebits)
	}

	rows := make(map[string]dto.TrialBalanceRowResponse, len(resp.Rows))
	for _, row := range resp.Rows {
		rows[row.AccountCode] = row
	}

	if row := rows["6100"]; row.Debit == nil || *row.Debit != "120.00" {
		t.Errorf("expected 6100 debit 120.00, got %+v", row)
	}
	if row := rows["1200"]; row.Debit == nil || *row.Debit != "180.00" {
		t.Errorf("expected 1200 debit 180.00, got %+v", row)
	}
	if row := rows["4000"]; row.Credit == nil || *row.Credit != "300.00" {
		t.Errorf("expected 4000 credit 300.00, got %+v", row)
	}
}
