package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
)

// UnitService defines the behavior needed by UnitHandler.
type UnitService interface {
	CreateUnit(ctx context.Context, input domain.NewUnit) (*domain.Unit, error)
	GetUnit(ctx context.Context, id domain.UnitID) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]*domain.Unit, error)
	TotalShares(ctx context.Context) (decimal.Decimal, error)
	UpdateUnit(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error)
}

// UnitHandler handles unit HTTP requests.
type UnitHandler struct {
	unitUC UnitService
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(unitUC UnitService) *UnitHandler {
	return &UnitHandler{unitUC: unitUC}
}

// Create creates a new unit.
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	shares, err := decimal.NewFromString(req.OwnershipShares)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ownership shares", req.OwnershipShares)
		return
	}

	unit, err := h.unitUC.CreateUnit(r.Context(), domain.NewUnit{
		UnitNumber:      req.UnitNumber,
		OwnerID:         req.OwnerID,
		OwnershipShares: shares,
	})
	if err != nil {
		writeDomainError(w, err, "failed to create unit")
		return
	}

	writeJSON(w, http.StatusCreated, dto.UnitFromDomain(unit))
}

// Get retrieves a unit by ID.
func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	unit, err := h.unitUC.GetUnit(r.Context(), domain.UnitID(id))
	if err != nil {
		writeDomainError(w, err, "failed to get unit")
		return
	}
	if unit == nil {
		writeError(w, http.StatusNotFound, "unit not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.UnitFromDomain(unit))
}

// List lists all units with the ownership share total.
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.unitUC.ListUnits(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list units")
		return
	}

	totalShares, err := h.unitUC.TotalShares(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to total shares")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListUnitsResponse{
		Units:       dto.UnitsFromDomain(units),
		Total:       len(units),
		TotalShares: totalShares.String(),
	})
}

// Update applies a partial update to a unit.
func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	update := domain.UnitUpdate{
		UnitNumber: req.UnitNumber,
		OwnerID:    req.OwnerID,
	}
	if req.OwnershipShares != nil {
		shares, err := decimal.NewFromString(*req.OwnershipShares)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ownership shares", *req.OwnershipShares)
			return
		}
		update.OwnershipShares = &shares
	}

	unit, err := h.unitUC.UpdateUnit(r.Context(), domain.UnitID(id), update)
	if err != nil {
		writeDomainError(w, err, "failed to update unit")
		return
	}

	writeJSON(w, http.StatusOK, dto.UnitFromDomain(unit))
}
