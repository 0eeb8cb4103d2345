package app_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/app"
	"github.com/tempo-labs/timed-contracts/store"
)

func newEngine(t *testing.T, st *store.Store) *app.Engine {
	t.Helper()

	engine, err := app.NewEngine(log.NewNopLogger(), app.DefaultOptions(), st)
	require.NoError(t, err)
	require.NoError(t, engine.InitGenesis(engine.DefaultGenesis()))

	return engine
}

func TestProduceSnapshots(t *testing.T) {
	st := store.New(dbm.NewMemDB())
	engine := newEngine(t, st)
	p := app.NewBlockProducer(engine, time.Second, 2)

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Produce())
	}

	require.Equal(t, uint64(5), engine.Height())

	heights, err := st.SnapshotHeights()
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 4}, heights)
}

func TestProduceWithoutStoreFailsOnSnapshot(t *testing.T) {
	engine := newEngine(t, nil)
	p := app.NewBlockProducer(engine, time.Second, 1)

	require.Error(t, p.Produce())
	// the block itself was executed
	require.Equal(t, uint64(1), engine.Height())
}

func TestProducerStartStop(t *testing.T) {
	engine := newEngine(t, nil)
	p := app.NewBlockProducer(engine, time.Millisecond, 0)

	require.NoError(t, p.Start(context.Background()))
	require.Error(t, p.Start(context.Background()))

	require.Eventually(t, func() bool {
		return engine.Height() >= 3
	}, 5*time.Second, time.Millisecond)

	p.Stop()
	h := engine.Height()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, h, engine.Height())

	// stopping twice is a no-op
	p.Stop()

	require.NoError(t, p.Start(context.Background()))
	p.Stop()
}

func TestProducerRejectsZeroInterval(t *testing.T) {
	p := app.NewBlockProducer(newEngine(t, nil), 0, 0)
	require.Error(t, p.Start(context.Background()))
}
