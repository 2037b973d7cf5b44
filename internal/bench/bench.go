package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/mass"
	"github.com/outofforest/parallel"
	"github.com/outofforest/tribles"
	"github.com/outofforest/tribles/id"
	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/tribleset"
	"github.com/outofforest/tribles/types"
	"github.com/outofforest/tribles/value"
)

const massCapacity = 1024

var (
	attributeName  = id.MustParse("328147856CC1984F0806DBB824D2B4CB")
	attributeLoves = id.MustParse("328EDD7583DE04E2BEDD6BD4FD50E651")
)

// Result reports benchmark outcome.
type Result struct {
	Tribles   int
	Matches   []string
	BuildTime time.Duration
	QueryTime time.Duration
}

// Run builds knowledge base of people loving each other and finds the one loved by Romeo.
func Run(ctx context.Context, config Config) (Result, error) {
	if err := config.validate(); err != nil {
		return Result{}, err
	}

	log := logger.Get(ctx)
	if log == nil {
		log = zap.NewNop()
	}
	db := tribles.New(tribles.Config{})

	start := time.Now()
	batches := make([]batch, config.Workers)
	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		for i := range config.Workers {
			first := i * config.People / config.Workers
			last := (i + 1) * config.People / config.Workers
			spawn(fmt.Sprintf("worker-%02d", i), parallel.Continue, func(ctx context.Context) error {
				var err error
				batches[i], err = generate(last - first)
				return err
			})
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	owner := id.NewOwner()
	romeo := owner.Mint(id.UFOID)
	juliet := owner.Mint(id.UFOID)
	defer romeo.Release()
	defer juliet.Release()

	lovers, err := couple(romeo.ID(), juliet.ID())
	if err != nil {
		return Result{}, err
	}

	for _, b := range batches {
		if _, err := db.Commit(ctx, b.Set); err != nil {
			return Result{}, err
		}
	}
	if _, err := db.Commit(ctx, lovers); err != nil {
		return Result{}, err
	}

	head := db.Head().Tribles
	for _, b := range batches {
		if err := b.verify(head); err != nil {
			return Result{}, err
		}
	}

	result := Result{
		Tribles:   db.Head().Tribles.Len(),
		BuildTime: time.Since(start),
	}
	log.Info("Knowledge base built",
		zap.Int("tribles", result.Tribles),
		zap.Duration("duration", result.BuildTime))

	start = time.Now()
	result.Matches, err = lovedBy(db.Head().Tribles, "Romeo")
	if err != nil {
		return Result{}, err
	}
	result.QueryTime = time.Since(start)

	log.Info("Query executed",
		zap.Strings("matches", result.Matches),
		zap.Duration("duration", result.QueryTime))

	return result, nil
}

// batch is the set of tribles generated by one worker together with the tribles themselves.
// Tribles live in the slab of the worker.
type batch struct {
	Set     tribleset.TribleSet
	Tribles []*tribleset.Trible
}

// verify checks that every trible of the batch was committed.
func (b batch) verify(head tribleset.TribleSet) error {
	for _, t := range b.Tribles {
		if !head.Has(*t) {
			return errors.Errorf("trible of entity %s is missing", id.Hex(t.Entity()))
		}
	}
	return nil
}

// generate creates people where every person loves the next one.
func generate(people int) (batch, error) {
	source := id.NewFUCIDSource()
	ids := lo.Times(people, func(int) types.RawID {
		return source.Next()
	})

	massTrible := mass.New[tribleset.Trible](massCapacity)
	b := batch{
		Set:     tribleset.New(),
		Tribles: make([]*tribleset.Trible, 0, 2*people),
	}
	for i, e := range ids {
		name, err := value.ShortString{}.Encode(fmt.Sprintf("person-%d", i))
		if err != nil {
			return batch{}, err
		}

		t := massTrible.New()
		*t = tribleset.NewTrible(e, attributeName, name)
		b.Tribles = append(b.Tribles, t)

		if i+1 < len(ids) {
			t := massTrible.New()
			*t = tribleset.NewTrible(e, attributeLoves, types.IDToValue(ids[i+1]))
			b.Tribles = append(b.Tribles, t)
		}
	}
	for _, t := range b.Tribles {
		b.Set = b.Set.Insert(*t)
	}
	return b, nil
}

func couple(romeo, juliet types.RawID) (tribleset.TribleSet, error) {
	romeoName, err := value.ShortString{}.Encode("Romeo")
	if err != nil {
		return tribleset.TribleSet{}, err
	}
	julietName, err := value.ShortString{}.Encode("Juliet")
	if err != nil {
		return tribleset.TribleSet{}, err
	}

	return tribleset.Entity(romeo,
		tribleset.AttributeValue{Attribute: attributeName, Value: romeoName},
		tribleset.AttributeValue{Attribute: attributeLoves, Value: types.IDToValue(juliet)},
	).Union(tribleset.Entity(juliet,
		tribleset.AttributeValue{Attribute: attributeName, Value: julietName},
	)), nil
}

// lovedBy returns names of people loved by the person.
func lovedBy(set tribleset.TribleSet, lover string) ([]string, error) {
	loverName, err := value.ShortString{}.Encode(lover)
	if err != nil {
		return nil, err
	}

	ctx := query.NewContext()
	x := ctx.NewVariable()
	y := ctx.NewVariable()
	n := ctx.NewVariable()

	seq, err := query.Find(query.Intersection(
		tribleset.Match(ctx, set, tribleset.Var(x), tribleset.ID(attributeName), tribleset.Literal(loverName)),
		tribleset.Match(ctx, set, tribleset.Var(x), tribleset.ID(attributeLoves), tribleset.Var(y)),
		tribleset.Match(ctx, set, tribleset.Var(y), tribleset.ID(attributeName), tribleset.Var(n)),
	), n)
	if err != nil {
		return nil, err
	}

	var names []string
	for row := range query.Distinct(seq) {
		name, err := value.ShortString{}.Decode(row[0])
		if err != nil {
			return nil, errors.WithMessage(err, "decoding name failed")
		}
		names = append(names, name)
	}
	return names, nil
}
