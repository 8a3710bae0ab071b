package ordering

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	OrderNumberPrefix   = "ORD"
	InvoiceNumberPrefix = "INV"

	// Candidates collide with probability 1/90000 per date per kind, so a
	// small bound is plenty. The database uniqueness constraint remains
	// the final arbiter under concurrency.
	maxGenerateAttempts = 25
)

// ExistsFunc reports whether a candidate number is already stored.
type ExistsFunc func(ctx context.Context, number string) (bool, error)

// NumberGenerator produces human-readable identifiers of the form
// <PREFIX>-<yyyyMMdd>-<5 digits>. The random source is injected so tests
// can force collisions deterministically. The generator serializes access
// to its own source only; every generator needs its own rand.Rand.
type NumberGenerator struct {
	prefix string

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewNumberGenerator(prefix string, rng *rand.Rand) *NumberGenerator {
	return &NumberGenerator{
		prefix: prefix,
		rng:    rng,
		now:    time.Now,
	}
}

// Next returns a candidate not currently present per exists. It does not
// guarantee exclusivity against concurrent generations; callers must be
// prepared for the final commit to fail on the uniqueness constraint.
func (g *NumberGenerator) Next(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate := g.candidate()

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s number: %w", g.prefix, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique %s number", maxGenerateAttempts, g.prefix)
}

func (g *NumberGenerator) candidate() string {
	g.mu.Lock()
	random := 10000 + g.rng.Intn(90000)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%05d", g.prefix, g.now().UTC().Format("20060102"), random)
}
