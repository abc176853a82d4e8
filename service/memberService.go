package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rmahat/seatledger/entity"
)

const searchThreshold = 0.3

// MemberService serves the canonical member ledger to admin clients.
type MemberService struct {
	members MemberStore

	collator *collate.Collator
}

func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{
		members:  members,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// GetProfile returns the member's identity fields, without the internal
// billing bookkeeping.
func (s *MemberService) GetProfile(ctx context.Context, registration string) (*entity.MemberProfile, error) {
	member, err := s.members.FindByRegistration(ctx, registration)
	if err != nil {
		return nil, err
	}
	return member.Profile(), nil
}

// Register creates the canonical ledger record for a new member. The billing
// fields start zeroed; the change projector maintains them from then on.
func (s *MemberService) Register(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	if member.Registration == "" || member.Name == "" {
		return nil, fmt.Errorf("%w: registration and name", ErrMissingField)
	}
	member.Due = 0
	member.Advance = 0
	member.LastPaymentDate = ""
	return s.members.Insert(ctx, member)
}

// List returns every member, ordered by display name.
func (s *MemberService) List(ctx context.Context) ([]*entity.Member, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(members, func(i, j int) bool {
		return s.collator.CompareString(members[i].Name, members[j].Name) < 0
	})
	return members, nil
}

// Search ranks members against a free-text query by name similarity, best
// match first. Substring hits always qualify; otherwise the edit-distance
// similarity must clear the threshold.
func (s *MemberService) Search(ctx context.Context, query string) ([]*entity.Member, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	type ranked struct {
		member *entity.Member
		score  float32
	}
	var matches []ranked
	for _, m := range members {
		name := strings.ToLower(m.Name)
		similarity, err := edlib.StringsSimilarity(query, name, edlib.Levenshtein)
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("similarity ranking failed")
			continue
		}
		if strings.Contains(name, query) || strings.Contains(m.Registration, query) {
			similarity = 1
		}
		if similarity >= searchThreshold {
			matches = append(matches, ranked{member: m, score: similarity})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]*entity.Member, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.member)
	}
	return result, nil
}
