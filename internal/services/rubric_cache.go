package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"alfredoptarigan/flwts-grader/internal/models"
)

// RubricCache serves a rubric snapshot loaded from another source. With a
// positive refresh interval a poller reloads it in the background; a failed
// reload keeps the previous snapshot.
type RubricCache interface {
	RubricSource
	Load(ctx context.Context) error
	Start(ctx context.Context)
	Stop()
}

type rubricCache struct {
	source          RubricSource
	refreshInterval time.Duration

	mu       sync.RWMutex
	snapshot []models.RubricEntry

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewRubricCache(source RubricSource, refreshInterval time.Duration) RubricCache {
	return &rubricCache{
		source:          source,
		refreshInterval: refreshInterval,
		stopChan:        make(chan struct{}),
	}
}

func (c *rubricCache) Name() string {
	return c.source.Name()
}

// Entries returns the cached snapshot, loading it on first use.
func (c *rubricCache) Entries(ctx context.Context) ([]models.RubricEntry, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if snapshot != nil {
		return copyEntries(snapshot), nil
	}

	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyEntries(c.snapshot), nil
}

// Load replaces the snapshot with a fresh read from the source.
func (c *rubricCache) Load(ctx context.Context) error {
	entries, err := c.source.Entries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rubric %q: %w", c.source.Name(), err)
	}

	c.mu.Lock()
	c.snapshot = copyEntries(entries)
	c.mu.Unlock()

	return nil
}

// Start implements RubricCache.
func (c *rubricCache) Start(ctx context.Context) {
	if c.refreshInterval <= 0 {
		log.Println("⚠️  Rubric refresh disabled, serving the initial snapshot")
		return
	}

	c.wg.Add(1)
	go c.pollRubric(ctx)

	log.Printf("🔄 Rubric refresher started (every %s)\n", c.refreshInterval)
}

// Stop implements RubricCache.
func (c *rubricCache) Stop() {
	c.stopOnce.Do(func() {
		log.Println("🛑 Stopping rubric refresher...")
		close(c.stopChan)
		c.wg.Wait()
		log.Println("✅ Rubric refresher stopped")
	})
}

func (c *rubricCache) pollRubric(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Load(ctx); err != nil {
				log.Printf("⚠️  Failed to refresh rubric, keeping previous snapshot: %v\n", err)
				continue
			}

			c.mu.RLock()
			count := len(c.snapshot)
			c.mu.RUnlock()
			log.Printf("📋 Rubric %q refreshed (%d entries)\n", c.source.Name(), count)
		}
	}
}
