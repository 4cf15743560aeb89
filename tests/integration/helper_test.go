package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adapterhttp "github.com/iho/hausledger/internal/adapter/http"
	"github.com/iho/hausledger/internal/adapter/http/handler"
	postgresrepo "github.com/iho/hausledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/hausledger/internal/adapter/repository/redis"
	"github.com/iho/hausledger/internal/usecase"
	"github.com/iho/hausledger/tests/testutil"
)

// newTestRouter wires the full HTTP stack over the test database. The
// idempotency store runs against an in-process redis so the tests only
// need postgres available.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	accountRepo := postgresrepo.NewAccountRepository(pool)
	journalRepo := postgresrepo.NewJournalRepository(pool)
	postingRepo := postgresrepo.NewPostingRepository(pool)
	allocationRepo := postgresrepo.NewAllocationRepository(pool)
	unitRepo := postgresrepo.NewUnitRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	balanceCache := redisrepo.NewCache(redisClient)

	accountUC := usecase.NewAccountUseCase(accountRepo, txManager, idGen, nil)
	journalUC := usecase.NewJournalUseCase(txManager, journalRepo, postingRepo, idGen, nil).WithCache(balanceCache)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, journalRepo, postingRepo).WithCache(balanceCache, usecase.DefaultBalanceCacheTTL)
	trialBalanceUC := usecase.NewTrialBalanceUseCase(accountRepo, ledgerUC)
	allocationUC := usecase.NewAllocationUseCase(txManager, journalRepo, postingRepo, allocationRepo, idGen, nil).WithCache(balanceCache)
	unitUC := usecase.NewUnitUseCase(unitRepo, idGen)

	return adapterhttp.NewRouter(adapterhttp.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		JournalHandler:    handler.NewJournalHandler(journalUC),
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC, trialBalanceUC),
		AllocationHandler: handler.NewAllocationHandler(allocationUC, unitUC),
		UnitHandler:       handler.NewUnitHandler(unitUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisrepo.NewIdempotencyStore(redisClient, nil),
		Logger:            zerolog.Nop(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}
