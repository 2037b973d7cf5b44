package tribles_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/outofforest/tribles"
	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/test"
)

// go test -benchtime=1x -timeout=1h -bench=. -run=^$ -cpuprofile profile.out
// go tool pprof -http="localhost:8000" pprofbin ./profile.out

func BenchmarkCommit(b *testing.B) {
	const (
		numOfTribles     = 100_000
		triblesPerCommit = 1_000
		numOfWorkers     = 4
	)

	b.StopTimer()
	b.ResetTimer()

	items := test.RandomTribles(rand.New(rand.NewSource(1)), numOfTribles)
	ctx := logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig))

	for bi := 0; bi < b.N; bi++ {
		db := tribles.New(tribles.Config{})

		b.StartTimer()
		err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
			for i := range numOfWorkers {
				spawn(fmt.Sprintf("worker-%02d", i), parallel.Continue, func(ctx context.Context) error {
					for start := i * triblesPerCommit; start < len(items); start += numOfWorkers * triblesPerCommit {
						if _, err := db.Commit(ctx, test.BuildTribleSet(items[start:start+triblesPerCommit])); err != nil {
							return err
						}
					}
					return nil
				})
			}
			return nil
		})
		b.StopTimer()

		require.NoError(b, err)
		require.Equal(b, numOfTribles, db.Head().Tribles.Len())
	}
}

func BenchmarkQuery(b *testing.B) {
	b.StopTimer()
	b.ResetTimer()

	set := test.BuildTribleSet(test.RandomTribles(rand.New(rand.NewSource(2)), 10_000))

	for bi := 0; bi < b.N; bi++ {
		ctx := query.NewContext()
		x := ctx.NewVariable()
		a1 := ctx.NewVariable()
		y := ctx.NewVariable()
		a2 := ctx.NewVariable()
		z := ctx.NewVariable()

		b.StartTimer()
		seq, err := query.Find(query.Intersection(
			set.Pattern(x, a1, y),
			set.Pattern(y, a2, z),
		), x, z)
		require.NoError(b, err)

		var count int
		for range seq {
			count++
		}
		b.StopTimer()

		b.ReportMetric(float64(count), "rows")
	}
}

func BenchmarkUnion(b *testing.B) {
	b.StopTimer()
	b.ResetTimer()

	items := test.RandomTribles(rand.New(rand.NewSource(3)), 100_000)
	s1 := test.BuildTribleSet(items[:60_000])
	s2 := test.BuildTribleSet(items[40_000:])

	for bi := 0; bi < b.N; bi++ {
		b.StartTimer()
		s := s1.Union(s2)
		b.StopTimer()

		require.Equal(b, len(items), s.Len())
	}
}
