package binder_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/binder"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLogging_Bind(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	ancestor := mocks.NewMockAncestor(ctrl)

	ancestor.EXPECT().Graph().Return(domain.NewGraph("base"))
	log.EXPECT().Debug("bound ancestor", "domain", "app/default", "ancestor", "base")

	require.NoError(t, binder.NewLogging(log).Bind(context.Background(), ancestor, "app/default"))
}

func TestLedger_CommitEdge(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("committed visibility edge", gomock.Any()).Times(2)

	l := binder.NewLedger(log)
	require.NoError(t, l.CommitEdge(context.Background(), "a", "b"))
	require.NoError(t, l.CommitEdge(context.Background(), "a", "b"))
	require.NoError(t, l.CommitEdge(context.Background(), "b", "c"))

	assert.Equal(t, []binder.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}}, l.Edges())
}

func TestLedger_Concurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	l := binder.NewLedger(log)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.CommitEdge(context.Background(), "src", "dst"))
		}()
	}
	wg.Wait()

	assert.Len(t, l.Edges(), 1)
}
