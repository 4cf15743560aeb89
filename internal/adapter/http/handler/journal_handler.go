package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.JournalEntry, error)
	ReverseEntry(ctx context.Context, input usecase.ReverseEntryInput) (*domain.JournalEntry, error)
	GetEntryWithPostings(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error)
	ListEntries(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	ListEntriesByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
}

// JournalHandler handles journal entry HTTP requests.
type JournalHandler struct {
	journalUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC JournalService) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Create creates a new journal entry with its postings.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, postings := req.ToDomain()
	created, err := h.journalUC.CreateEntry(r.Context(), usecase.CreateEntryInput{
		Entry:    entry,
		Postings: postings,
	})
	if err != nil {
		writeDomainError(w, err, "failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(created))
}

// Get retrieves an entry with its postings.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.journalUC.GetEntryWithPostings(r.Context(), domain.JournalEntryID(id))
	if err != nil {
		writeDomainError(w, err, "failed to get entry")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryWithPostingsFromDomain(entry))
}

// List lists entries with optional date bounds and pagination.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := domain.QueryOptions{
		DateRange: domain.DateRange{
			Start: parseDateQuery(r, "from"),
			End:   parseDateQuery(r, "to"),
		},
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	entries, err := h.journalUC.ListEntries(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   len(entries),
	})
}

// ListByAccount lists entries touching one account.
func (h *JournalHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	opts := domain.QueryOptions{
		DateRange: domain.DateRange{
			Start: parseDateQuery(r, "from"),
			End:   parseDateQuery(r, "to"),
		},
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	entries, err := h.journalUC.ListEntriesByAccount(r.Context(), domain.AccountID(id), opts)
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   len(entries),
	})
}

// Reverse creates a reversal entry for an existing entry.
func (h *JournalHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ReverseEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := usecase.ReverseEntryInput{
		EntryID:   domain.JournalEntryID(id),
		Reason:    req.Reason,
		CreatedBy: req.CreatedBy,
	}
	if req.Date != "" {
		date, err := time.Parse(dto.DateFormat, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reversal date", err.Error())
			return
		}
		input.Date = &date
	}

	reversal, err := h.journalUC.ReverseEntry(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to reverse entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(reversal))
}
