package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

type journalServiceStub struct {
	createFn        func(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error)
	reverseFn       func(ctx context.Context, input usecase.ReverseEntryInput) (*domain.JournalEntry, error)
	getFn           func(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error)
	listFn          func(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	listByAccountFn func(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
}

func (s *journalServiceStub) CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error) {
	return s.createFn(ctx, input)
}

func (s *journalServiceStub) ReverseEntry(ctx context.Context, input usecase.ReverseEntryInput) (*domain.JournalEntry, error) {
	return s.reverseFn(ctx, input)
}

func (s *journalServiceStub) GetEntryWithPostings(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error) {
	return s.getFn(ctx, id)
}

func (s *journalServiceStub) ListEntries(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	return s.listFn(ctx, opts)
}

func (s *journalServiceStub) ListEntriesByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	return s.listByAccountFn(ctx, accountID, opts)
}

func entryRequestBody() []byte {
	body, _ := json.Marshal(dto.CreateEntryRequest{
		Date:        "2024-03-15",
		Description: "Heating oil delivery",
		Reference:   "INV-2024-001",
		CreatedBy:   "verwalter",
		Postings: []dto.PostingRequest{
			{AccountID: "acc-expense", Amount: "100.00", Side: "debit"},
			{AccountID: "acc-bank", Amount: "100.00", Side: "credit"},
		},
	})
	return body
}

func TestJournalHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateEntryInput
	h := NewJournalHandler(&journalServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error) {
			captured = input
			return &domain.JournalEntry{
				ID:          "e1",
				Date:        input.Entry.Date,
				Description: input.Entry.Description,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(entryRequestBody()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Entry.Description != "Heating oil delivery" {
		t.Fatalf("expected description to be passed through, got %q", captured.Entry.Description)
	}
	if len(captured.Postings) != 2 || captured.Postings[0].Side != domain.Debit {
		t.Fatalf("expected postings to be passed through, got %+v", captured.Postings)
	}
	if got := captured.Entry.Date.Format("2006-01-02"); got != "2024-03-15" {
		t.Fatalf("expected parsed date 2024-03-15, got %s", got)
	}
}

func TestJournalHandler_Create_UnbalancedEntryRejected(t *testing.T) {
	h := NewJournalHandler(&journalServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error) {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "postings", Message: "entry does not balance: debits=100.00, credits=99.99", Code: "UNBALANCED_ENTRY"},
			}}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(entryRequestBody()))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Code != "UNBALANCED_ENTRY" {
		t.Fatalf("expected unbalanced entry field error, got %+v", resp)
	}
}

func TestJournalHandler_Get_WithPostings(t *testing.T) {
	h := NewJournalHandler(&journalServiceStub{
		getFn: func(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error) {
			return &domain.JournalEntryWithPostings{
				JournalEntry: domain.JournalEntry{ID: id, Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
				Postings: []domain.Posting{
					{ID: "p1", AccountID: "acc-expense", Amount: "100.00", Side: domain.Debit},
					{ID: "p2", AccountID: "acc-bank", Amount: "100.00", Side: domain.Credit},
				},
			}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/entries/e1", nil), "id", "e1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.EntryWithPostingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "e1" || len(resp.Postings) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Postings[0].Amount != "100.00" || resp.Postings[0].Side != "debit" {
		t.Fatalf("unexpected posting: %+v", resp.Postings[0])
	}
}

func TestJournalHandler_Get_NotFound(t *testing.T) {
	h := NewJournalHandler(&journalServiceStub{
		getFn: func(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error) {
			return nil, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/entries/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestJournalHandler_Reverse_Success(t *testing.T) {
	var captured usecase.ReverseEntryInput
	h := NewJournalHandler(&journalServiceStub{
		reverseFn: func(ctx context.Context, input usecase.ReverseEntryInput) (*domain.JournalEntry, error) {
			captured = input
			original := domain.JournalEntryID("e1")
			return &domain.JournalEntry{ID: "e2", ReversalOfID: &original}, nil
		},
	})

	body, _ := json.Marshal(dto.ReverseEntryRequest{
		Date:      "2024-04-01",
		Reason:    "wrong account",
		CreatedBy: "verwalter",
	})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/entries/e1/reverse", bytes.NewReader(body)), "id", "e1")
	rec := httptest.NewRecorder()

	h.Reverse(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.EntryID != "e1" || captured.Reason != "wrong account" {
		t.Fatalf("expected input to be passed through, got %+v", captured)
	}
	if captured.Date == nil || captured.Date.Format("2006-01-02") != "2024-04-01" {
		t.Fatalf("expected reversal date to be parsed, got %v", captured.Date)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ReversalOfID == nil || *resp.ReversalOfID != "e1" {
		t.Fatalf("expected reversal linkage in response, got %+v", resp)
	}
}

func TestJournalHandler_Reverse_NotFound(t *testing.T) {
	h := NewJournalHandler(&journalServiceStub{
		reverseFn: func(ctx context.Context, input usecase.ReverseEntryInput) (*domain.JournalEntry, error) {
			return nil, domain.NotFound("journal entry", input.EntryID)
		},
	})

	body, _ := json.Marshal(dto.ReverseEntryRequest{CreatedBy: "verwalter"})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/entries/missing/reverse", bytes.NewReader(body)), "id", "missing")
	rec := httptest.NewRecorder()

	h.Reverse(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestJournalHandler_List_PassesDateBounds(t *testing.T) {
	var captured domain.QueryOptions
	h := NewJournalHandler(&journalServiceStub{
		listFn: func(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
			captured = opts
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries?from=2024-01-01&to=2024-12-31&limit=10", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Start == nil || captured.End == nil {
		t.Fatalf("expected date bounds to be parsed, got %+v", captured)
	}
	if captured.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", captured.Limit)
	}
}
