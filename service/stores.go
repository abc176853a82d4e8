package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rmahat/seatledger/entity"
)

// BookingStore is the slice of the booking repository the services consume.
// key is always a month partition key.
type BookingStore interface {
	FindAll(ctx context.Context, key string) ([]*entity.Booking, error)
	FindBySeat(ctx context.Context, key, seat string) ([]*entity.Booking, error)
	FindByRegistration(ctx context.Context, key, registration string) (*entity.Booking, error)
	Insert(ctx context.Context, key string, booking *entity.Booking) (*entity.Booking, error)
	UpsertByRegistration(ctx context.Context, key, registration string, fields bson.M) (*entity.Booking, error)
	UpdateByRegistration(ctx context.Context, key, registration string, fields bson.M) (*entity.Booking, error)
	DeleteByID(ctx context.Context, key string, id primitive.ObjectID) error
	DeleteByRegistration(ctx context.Context, key, registration string) (int64, error)
	MergeColor(ctx context.Context, key string, id primitive.ObjectID, column, color string) (*entity.Booking, error)
}

// MemberStore is the ledger surface the services consume.
type MemberStore interface {
	FindByRegistration(ctx context.Context, registration string) (*entity.Member, error)
	FindAll(ctx context.Context) ([]*entity.Member, error)
	Insert(ctx context.Context, member *entity.Member) (*entity.Member, error)
	UpsertProjection(ctx context.Context, registration, date, shift string) error
}

// ChangeFeed opens a partition's change stream.
type ChangeFeed interface {
	Watch(ctx context.Context, key string) (*mongo.ChangeStream, error)
}
