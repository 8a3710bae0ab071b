package ordering

import (
	"context"
	"math/rand"
	"regexp"
	"sync"
	"testing"
)

func neverExists(context.Context, string) (bool, error) { return false, nil }

func TestNumberGeneratorFormat(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{OrderNumberPrefix, `^ORD-\d{8}-\d{5}$`},
		{InvoiceNumberPrefix, `^INV-\d{8}-\d{5}$`},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			gen := NewNumberGenerator(tt.prefix, rand.New(rand.NewSource(1)))
			number, err := gen.Next(context.Background(), neverExists)
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if !regexp.MustCompile(tt.want).MatchString(number) {
				t.Errorf("Next() = %q, want match for %q", number, tt.want)
			}
		})
	}
}

func TestNumberGeneratorRetriesOnCollision(t *testing.T) {
	gen := NewNumberGenerator(OrderNumberPrefix, rand.New(rand.NewSource(42)))

	var candidates []string
	exists := func(_ context.Context, number string) (bool, error) {
		candidates = append(candidates, number)
		// Report the first candidate as taken.
		return len(candidates) == 1, nil
	}

	number, err := gen.Next(context.Background(), exists)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Next() checked %d candidates, want 2", len(candidates))
	}
	if number != candidates[1] {
		t.Errorf("Next() = %q, want second candidate %q", number, candidates[1])
	}
	if candidates[0] == candidates[1] {
		t.Errorf("seeded generator produced the same candidate twice: %q", candidates[0])
	}
}

// Mirrors the production wiring: one generator per kind, each with its
// own source, hammered from concurrent requests. Run with -race.
func TestNumberGeneratorsConcurrentUse(t *testing.T) {
	generators := []*NumberGenerator{
		NewNumberGenerator(OrderNumberPrefix, rand.New(rand.NewSource(1))),
		NewNumberGenerator(InvoiceNumberPrefix, rand.New(rand.NewSource(2))),
	}

	var wg sync.WaitGroup
	for _, gen := range generators {
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(gen *NumberGenerator) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					if _, err := gen.Next(context.Background(), neverExists); err != nil {
						t.Errorf("Next() error = %v", err)
						return
					}
				}
			}(gen)
		}
	}
	wg.Wait()
}

func TestNumberGeneratorGivesUpEventually(t *testing.T) {
	gen := NewNumberGenerator(OrderNumberPrefix, rand.New(rand.NewSource(7)))

	alwaysTaken := func(context.Context, string) (bool, error) { return true, nil }
	if _, err := gen.Next(context.Background(), alwaysTaken); err == nil {
		t.Fatal("Next() expected error when every candidate is taken")
	}
}
