package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rmahat/seatledger/entity"
)

// BookingRepository reads and writes booking rows inside month partitions.
// Every mutation is a single-document atomic operation; that is the
// correctness boundary, there are no multi-document transactions.
type BookingRepository struct {
	registry *PartitionRegistry
}

func NewBookingRepository(registry *PartitionRegistry) *BookingRepository {
	return &BookingRepository{
		registry: registry,
	}
}

func (r *BookingRepository) FindAll(ctx context.Context, key string) ([]*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, wrapStoreErr(err)
	}
	return bookings, nil
}

// FindBySeat returns the non-terminal bookings on a seat across shifts.
func (r *BookingRepository) FindBySeat(ctx context.Context, key, seat string) ([]*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{
		"seat": seat,
		"status": bson.M{
			"$nin": bson.A{entity.StatusLeft, entity.StatusDiscontinue},
		},
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, wrapStoreErr(err)
	}
	return bookings, nil
}

func (r *BookingRepository) FindByRegistration(ctx context.Context, key, registration string) (*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var booking entity.Booking
	err = coll.FindOne(ctx, bson.M{"registration": registration}).Decode(&booking)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &booking, nil
}

func (r *BookingRepository) Insert(ctx context.Context, key string, booking *entity.Booking) (*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, wrapStoreErr(err)
	}
	return booking, nil
}

// UpsertByRegistration merges fields into the booking keyed by registration,
// creating the row if absent, and returns the post-image.
func (r *BookingRepository) UpsertByRegistration(ctx context.Context, key, registration string, fields bson.M) (*entity.Booking, error) {
	return r.setByRegistration(ctx, key, registration, fields, true)
}

// UpdateByRegistration is the non-upserting variant: ErrNotFound if the
// booking does not exist in the partition.
func (r *BookingRepository) UpdateByRegistration(ctx context.Context, key, registration string, fields bson.M) (*entity.Booking, error) {
	return r.setByRegistration(ctx, key, registration, fields, false)
}

func (r *BookingRepository) setByRegistration(ctx context.Context, key, registration string, fields bson.M, upsert bool) (*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	delete(fields, "_id")

	var booking entity.Booking
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"registration": registration},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetUpsert(upsert).SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &booking, nil
}

func (r *BookingRepository) DeleteByID(ctx context.Context, key string, id primitive.ObjectID) error {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapStoreErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByRegistration frees the seat held under a registration. Deleting an
// absent row is not an error: the seat is already free.
func (r *BookingRepository) DeleteByRegistration(ctx context.Context, key, registration string) (int64, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"registration": registration})
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return res.DeletedCount, nil
}

// MergeColor sets one key of the sparse annotation map without touching its
// siblings.
func (r *BookingRepository) MergeColor(ctx context.Context, key string, id primitive.ObjectID, column, color string) (*entity.Booking, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var booking entity.Booking
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"colors." + column: color}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&booking)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &booking, nil
}

// Watch opens a change stream over a partition, limited to inserts and
// updates, with the post-image attached to update events.
func (r *BookingRepository) Watch(ctx context.Context, key string) (*mongo.ChangeStream, error) {
	coll, err := r.registry.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace"}},
		}}},
	}
	stream, err := coll.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return stream, nil
}
