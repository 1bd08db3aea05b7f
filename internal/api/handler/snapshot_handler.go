package handler

import (
	"context"
	"fmt"
	"loan-portal/internal/api/handler/dto"
	"loan-portal/internal/domain/customer"
	"loan-portal/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strconv"
)

type snapshotLister interface {
	ListLatest(ctx context.Context, limit int) ([]customer.Snapshot, error)
}

type SnapshotHandler struct {
	repo   snapshotLister
	logger *slog.Logger
}

func NewSnapshotHandler(repo snapshotLister, l *slog.Logger) *SnapshotHandler {
	if repo == nil {
		panic("snapshot repository cannot be nil")
	}
	return &SnapshotHandler{repo: repo, logger: l.With("component", "SnapshotHandler")}
}

// ListSnapshots handles GET /portfolio/snapshots
// @Summary Portfolio snapshot history
// @Description Most recent portfolio aggregates recorded by the scheduled snapshot job, newest first.
// @Tags Portfolio
// @Produce json
// @Param limit query int false "Maximum number of snapshots (default 20, max 500)"
// @Success 200 {object} dto.SnapshotListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 500 {object} dto.ErrorResponse "Database error"
// @Router /portfolio/snapshots [get]
// @Security BearerAuth
func (h *SnapshotHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, fmt.Errorf("%w: limit must be a positive integer", apperrors.ErrInvalidArgument))
			return
		}
		limit = n
	}

	snapshots, err := h.repo.ListLatest(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list snapshots", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []customer.Snapshot{}
	}
	respondJSON(w, http.StatusOK, dto.SnapshotListResponse{Snapshots: snapshots, Count: len(snapshots)})
}
