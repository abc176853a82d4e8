package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rmahat/seatledger/entity"
)

type storeCall struct {
	key          string
	registration string
	fields       bson.M
}

type mockBookingStore struct {
	findAll     map[string][]*entity.Booking
	findAllErr  error
	bySeat      []*entity.Booking
	byReg       *entity.Booking
	byRegErr    error
	upsertErr   error
	updateErr   error
	deleteRegN  int64
	deleteIDErr error

	findAllKeys    []string
	insertCalls    []*entity.Booking
	upsertCalls    []storeCall
	updateCalls    []storeCall
	deleteRegCalls []storeCall
	deleteIDCalls  []primitive.ObjectID
	colorCalls     []storeCall
}

func (m *mockBookingStore) FindAll(_ context.Context, key string) ([]*entity.Booking, error) {
	m.findAllKeys = append(m.findAllKeys, key)
	return m.findAll[key], m.findAllErr
}

func (m *mockBookingStore) FindBySeat(_ context.Context, key, seat string) ([]*entity.Booking, error) {
	return m.bySeat, nil
}

func (m *mockBookingStore) FindByRegistration(_ context.Context, key, registration string) (*entity.Booking, error) {
	return m.byReg, m.byRegErr
}

func (m *mockBookingStore) Insert(_ context.Context, key string, booking *entity.Booking) (*entity.Booking, error) {
	m.insertCalls = append(m.insertCalls, booking)
	return booking, nil
}

func (m *mockBookingStore) UpsertByRegistration(_ context.Context, key, registration string, fields bson.M) (*entity.Booking, error) {
	m.upsertCalls = append(m.upsertCalls, storeCall{key: key, registration: registration, fields: fields})
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return bookingFromFields(registration, fields), nil
}

func (m *mockBookingStore) UpdateByRegistration(_ context.Context, key, registration string, fields bson.M) (*entity.Booking, error) {
	m.updateCalls = append(m.updateCalls, storeCall{key: key, registration: registration, fields: fields})
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return bookingFromFields(registration, fields), nil
}

func (m *mockBookingStore) DeleteByID(_ context.Context, key string, id primitive.ObjectID) error {
	m.deleteIDCalls = append(m.deleteIDCalls, id)
	return m.deleteIDErr
}

func (m *mockBookingStore) DeleteByRegistration(_ context.Context, key, registration string) (int64, error) {
	m.deleteRegCalls = append(m.deleteRegCalls, storeCall{key: key, registration: registration})
	return m.deleteRegN, nil
}

func (m *mockBookingStore) MergeColor(_ context.Context, key string, id primitive.ObjectID, column, color string) (*entity.Booking, error) {
	m.colorCalls = append(m.colorCalls, storeCall{key: key, fields: bson.M{column: color}})
	return &entity.Booking{ID: id, Colors: map[string]string{column: color}}, nil
}

// bookingFromFields mirrors what the post-image of a $set upsert would carry,
// for the fields the tests care about.
func bookingFromFields(registration string, fields bson.M) *entity.Booking {
	b := &entity.Booking{Registration: registration}
	if v, ok := fields["name"].(string); ok {
		b.Name = v
	}
	if v, ok := fields["seat"].(string); ok {
		b.Seat = v
	}
	if v, ok := fields["shift"].(string); ok {
		b.Shift = v
	}
	if v, ok := fields["status"].(string); ok {
		b.Status = v
	}
	if v, ok := fields["date"].(string); ok {
		b.Date = v
	}
	if v, ok := fields["Payment_detail"].(string); ok {
		b.PaymentDetail = v
	}
	return b
}

type projCall struct {
	registration string
	date         string
	shift        string
}

type mockMemberStore struct {
	mu sync.Mutex

	member    *entity.Member
	memberErr error
	all       []*entity.Member
	insertErr error

	projErrs []error // consumed one per call, nil entries succeed

	insertCalls []*entity.Member
	projCalls   []projCall
}

func (m *mockMemberStore) FindByRegistration(_ context.Context, registration string) (*entity.Member, error) {
	return m.member, m.memberErr
}

func (m *mockMemberStore) FindAll(_ context.Context) ([]*entity.Member, error) {
	return m.all, nil
}

func (m *mockMemberStore) Insert(_ context.Context, member *entity.Member) (*entity.Member, error) {
	m.insertCalls = append(m.insertCalls, member)
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	return member, nil
}

func (m *mockMemberStore) UpsertProjection(_ context.Context, registration, date, shift string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if len(m.projErrs) > 0 {
		err, m.projErrs = m.projErrs[0], m.projErrs[1:]
	}
	if err != nil {
		return err
	}
	m.projCalls = append(m.projCalls, projCall{registration: registration, date: date, shift: shift})
	return nil
}

func (m *mockMemberStore) projections() []projCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]projCall(nil), m.projCalls...)
}
