package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
)

// BlockProducer advances an Engine on a fixed interval.
type BlockProducer struct {
	engine   *Engine
	interval time.Duration
	// snapshotInterval is the number of blocks between two snapshots, zero
	// disabling them.
	snapshotInterval uint64
	logger           log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBlockProducer returns a stopped producer.
func NewBlockProducer(engine *Engine, interval time.Duration, snapshotInterval uint64) *BlockProducer {
	return &BlockProducer{
		engine:           engine,
		interval:         interval,
		snapshotInterval: snapshotInterval,
		logger:           engine.Logger().With("module", "producer"),
	}
}

// Start produces blocks in the background until ctx is done or Stop is
// called.
func (p *BlockProducer) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("block interval must be positive, got %s", p.interval)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return fmt.Errorf("block producer already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)

	p.logger.Info("started block producer", "interval", p.interval.String())

	return nil
}

// Stop halts the producer and waits for the block in progress.
func (p *BlockProducer) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	p.logger.Info("stopped block producer")
}

func (p *BlockProducer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Produce(); err != nil {
				p.logger.Error("failed to produce block", "err", err)
			}
		}
	}
}

// Produce executes the next block and takes a snapshot when one is due.
func (p *BlockProducer) Produce() error {
	h, events, err := p.engine.NextBlock()
	if err != nil {
		return err
	}

	p.logger.Debug("produced block", "height", h, "events", len(events))

	if p.snapshotInterval > 0 && h%p.snapshotInterval == 0 {
		if err := p.engine.Snapshot(); err != nil {
			return fmt.Errorf("snapshot at height %d: %w", h, err)
		}
	}

	return nil
}
