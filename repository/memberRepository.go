package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rmahat/seatledger/entity"
)

const ledgerCollection = "members"

// MemberRepository owns the canonical member ledger.
type MemberRepository struct {
	db *mongo.Database
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

func (r *MemberRepository) collection() *mongo.Collection {
	return r.db.Collection(ledgerCollection)
}

func (r *MemberRepository) FindByRegistration(ctx context.Context, registration string) (*entity.Member, error) {
	var member entity.Member
	err := r.collection().FindOne(ctx, bson.M{"registration": registration}).Decode(&member)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &member, nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*entity.Member, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	var members []*entity.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, wrapStoreErr(err)
	}
	return members, nil
}

func (r *MemberRepository) Insert(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	if _, err := r.collection().InsertOne(ctx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, wrapStoreErr(err)
	}
	return member, nil
}

// UpsertProjection lands a partition write into the ledger: only the derived
// fields move, the member record is created if the registration is unknown.
func (r *MemberRepository) UpsertProjection(ctx context.Context, registration, date, shift string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"registration": registration},
		bson.M{"$set": bson.M{
			"lastPaymentDate": date,
			"shift":           shift,
		}},
		options.Update().SetUpsert(true),
	)
	return wrapStoreErr(err)
}
