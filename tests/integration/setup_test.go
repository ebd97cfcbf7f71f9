package integration

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gosplit/internal/adapter/repository/redis"
	"github.com/iho/gosplit/internal/infrastructure/metrics"
	"github.com/iho/gosplit/internal/usecase"
	"github.com/iho/gosplit/tests/testutil"
)

// stack wires the use cases to a real database and an in-memory redis.
type stack struct {
	db          *testutil.TestDB
	redis       *goredis.Client
	metrics     *metrics.Metrics
	outboxRepo  *postgres.OutboxRepository
	expenses    *usecase.ExpenseUseCase
	payments    *usecase.PaymentUseCase
	settlements *usecase.SettlementUseCase
	events      *usecase.EventUseCase
	users       *usecase.UserUseCase
}

func newStack(t *testing.T) *stack {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := testutil.NewTestDB(t)
	pool := db.Pool

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zerolog.Nop()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	txManager := postgres.NewTxManager(pool)
	eventRepo := postgres.NewEventRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(log)

	return &stack{
		db:          db,
		redis:       client,
		metrics:     m,
		outboxRepo:  outboxRepo,
		expenses:    usecase.NewExpenseUseCase(txManager, eventRepo, userRepo, expenseRepo, outboxRepo, idGen, retrier, m, log),
		payments:    usecase.NewPaymentUseCase(txManager, eventRepo, userRepo, paymentRepo, outboxRepo, idGen, retrier, m, log),
		settlements: usecase.NewSettlementUseCase(txManager, eventRepo, userRepo, expenseRepo, paymentRepo, redisRepo.NewUserCache(client, 0), m, log),
		events:      usecase.NewEventUseCase(eventRepo, idGen, log),
		users:       usecase.NewUserUseCase(userRepo, idGen),
	}
}
