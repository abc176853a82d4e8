package service

import (
	"context"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/rmahat/seatledger/entity"
)

// ProjectionEvent is a qualifying partition write on its way to the ledger.
type ProjectionEvent struct {
	Registration string
	Date         string
	Shift        string
	Partition    string
}

type changeDocument struct {
	OperationType string         `bson:"operationType"`
	FullDocument  entity.Booking `bson:"fullDocument"`
}

// ProjectorService keeps the member ledger consistent with partition writes.
// One watcher per month partition pulls change-stream events and pushes
// typed ProjectionEvents onto an internal channel; a small worker pool
// drains the channel into the ledger. The projection is best-effort and
// at-least-once: a failed event is logged and skipped, the ledger may trail
// the partitions, and neither failure mode ever reaches the writer that
// triggered it.
type ProjectorService struct {
	feed   ChangeFeed
	ledger MemberStore
	keys   []string

	events  chan ProjectionEvent
	workers int
}

func NewProjectorService(feed ChangeFeed, ledger MemberStore, keys []string) *ProjectorService {
	return &ProjectorService{
		feed:    feed,
		ledger:  ledger,
		keys:    keys,
		events:  make(chan ProjectionEvent, 64),
		workers: 4,
	}
}

// Run starts every watcher and the worker pool, and blocks until ctx is
// cancelled. It is called once at boot for the lifetime of the process.
func (s *ProjectorService) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, key := range s.keys {
		key := key
		g.Go(func() error {
			s.watch(ctx, key)
			return nil
		})
	}
	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			s.project(ctx)
			return nil
		})
	}
	return g.Wait()
}

// watch owns one partition's change stream for the process lifetime. A
// dropped stream is reopened with backoff; the watcher itself never exits
// before ctx does.
func (s *ProjectorService) watch(ctx context.Context, key string) {
	for ctx.Err() == nil {
		var stream *mongo.ChangeStream
		retrier := retry.NewRetrier(5, 500*time.Millisecond, 10*time.Second)
		err := retrier.RunContext(ctx, func(ctx context.Context) error {
			var err error
			stream, err = s.feed.Watch(ctx, key)
			return err
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("partition", key).Msg("change stream unavailable, backing off")
			continue
		}

		s.consume(ctx, key, stream)
	}
}

func (s *ProjectorService) consume(ctx context.Context, key string, stream *mongo.ChangeStream) {
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var doc changeDocument
		if err := stream.Decode(&doc); err != nil {
			log.Error().Err(err).Str("partition", key).Msg("undecodable change event, skipping")
			continue
		}
		if doc.FullDocument.Registration == "" || doc.FullDocument.Date == "" {
			continue
		}

		ev := ProjectionEvent{
			Registration: doc.FullDocument.Registration,
			Date:         doc.FullDocument.Date,
			Shift:        doc.FullDocument.Shift,
			Partition:    key,
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Str("partition", key).Msg("change stream closed, reopening")
	}
}

// project drains projection events into the ledger. A failing event is
// isolated: logged, skipped, and the worker moves on.
func (s *ProjectorService) project(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			err := s.ledger.UpsertProjection(ctx, ev.Registration, ev.Date, ev.Shift)
			if err != nil {
				log.Error().Err(err).
					Str("partition", ev.Partition).
					Str("registration", ev.Registration).
					Msg("ledger projection failed, event skipped")
			}
		}
	}
}
