package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/iho/hausledger/internal/domain"
)

// DefaultBalanceCacheTTL bounds staleness should an invalidation ever be
// lost; writers delete affected keys eagerly.
const DefaultBalanceCacheTTL = 5 * time.Minute

func balanceCacheKey(id domain.AccountID) string {
	return "balance:" + id.String()
}

// invalidateBalanceCache drops cached balances for every distinct account
// in accountIDs. Best effort: a failed delete leaves a stale value that
// expires with the TTL, so it is logged rather than returned.
func invalidateBalanceCache(ctx context.Context, cache Cache, accountIDs []domain.AccountID) {
	if cache == nil || len(accountIDs) == 0 {
		return
	}

	seen := make(map[domain.AccountID]struct{}, len(accountIDs))
	keys := make([]string, 0, len(accountIDs))

	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, balanceCacheKey(id))
	}

	if err := cache.Delete(ctx, keys...); err != nil {
		slog.Warn("balance cache invalidation failed", "error", err, "keys", len(keys))
	}
}
