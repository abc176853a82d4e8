package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rmahat/seatledger/util"
)

const namespaceExistsCode = 48

// PartitionRegistry maps a month key to the collection holding that month's
// bookings. All twelve partitions of the current year are materialized at
// construction time, so the hot write path never races on collection
// creation; cold keys (historical reads, year boundary) are registered on
// first use behind a mutex, with collection creation tolerant of another
// process having created it first.
//
// The registry is constructed once in main and injected into the
// repositories that need it.
type PartitionRegistry struct {
	db *mongo.Database

	mu      sync.RWMutex
	handles map[string]*mongo.Collection
}

func NewPartitionRegistry(ctx context.Context, client *mongo.Client, dbName string) (*PartitionRegistry, error) {
	r := &PartitionRegistry{
		db:      client.Database(dbName),
		handles: make(map[string]*mongo.Collection, 12),
	}

	for _, key := range util.MonthKeysForYear(time.Now().Year()) {
		if _, err := r.register(ctx, key); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Get returns the stable collection handle for a month key. Repeated calls
// for the same key return the same handle.
func (r *PartitionRegistry) Get(ctx context.Context, key string) (*mongo.Collection, error) {
	r.mu.RLock()
	coll, ok := r.handles[key]
	r.mu.RUnlock()
	if ok {
		return coll, nil
	}
	return r.register(ctx, key)
}

// Keys returns every month key the registry currently holds a handle for.
func (r *PartitionRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.handles))
	for key := range r.handles {
		keys = append(keys, key)
	}
	return keys
}

func (r *PartitionRegistry) register(ctx context.Context, key string) (*mongo.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if coll, ok := r.handles[key]; ok {
		return coll, nil
	}

	name := util.PartitionCollection(key)
	if err := r.db.CreateCollection(ctx, name); err != nil && !isNamespaceExists(err) {
		return nil, wrapStoreErr(err)
	}

	coll := r.db.Collection(name)

	// One live booking per registration per partition.
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "registration", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	r.handles[key] = coll
	return coll, nil
}

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode
}
