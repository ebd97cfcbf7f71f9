package usecase_test

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gosplit/internal/usecase/mocks"
)

var nopLogger = zerolog.Nop()

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sequentialIDs makes idGen return prefix-1, prefix-2, ...
func sequentialIDs(idGen *mocks.MockIDGenerator, prefix string) {
	n := 0
	idGen.EXPECT().Generate().DoAndReturn(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}).AnyTimes()
}

// passThroughRetrier runs the operation exactly once.
func passThroughRetrier(r *mocks.MockRetrier) {
	r.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, op func() error) error {
		return op()
	}).AnyTimes()
}

// expectTx wires txManager to hand out tx and expects it to be committed
// when commit is true.
func expectTx(txManager *mocks.MockTransactionManager, tx *mocks.MockTransaction, commit bool) {
	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	if commit {
		tx.EXPECT().Commit(gomock.Any()).Return(nil)
	}
}
