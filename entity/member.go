package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Member is the canonical per-member ledger record. Created by the
// registration flow; lastPaymentDate and shift are maintained by the change
// projector, never by request handlers. Records are never deleted here.
type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Registration string             `bson:"registration" json:"registration"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Gender       string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DOB          string             `bson:"dob,omitempty" json:"dob,omitempty"`
	FatherName   string             `bson:"fatherName,omitempty" json:"fatherName,omitempty"`
	MotherName   string             `bson:"motherName,omitempty" json:"motherName,omitempty"`
	Contact      string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Aadhaar      string             `bson:"aadhaar,omitempty" json:"aadhaar,omitempty"`
	PreparingFor string             `bson:"preparingFor,omitempty" json:"preparingFor,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Shift        string             `bson:"shift,omitempty" json:"shift,omitempty"`

	Due             float64 `bson:"due,omitempty" json:"due,omitempty"`
	Advance         float64 `bson:"advance,omitempty" json:"advance,omitempty"`
	LastPaymentDate string  `bson:"lastPaymentDate,omitempty" json:"lastPaymentDate,omitempty"`
}

// MemberProfile is the member view served to admin clients. It carries the
// identity fields only, not the internal billing bookkeeping.
type MemberProfile struct {
	Registration string `json:"registration"`
	Name         string `json:"name"`
	Gender       string `json:"gender,omitempty"`
	DOB          string `json:"dob,omitempty"`
	FatherName   string `json:"fatherName,omitempty"`
	MotherName   string `json:"motherName,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Aadhaar      string `json:"aadhaar,omitempty"`
	PreparingFor string `json:"preparingFor,omitempty"`
	Image        string `json:"image,omitempty"`
	Shift        string `json:"shift,omitempty"`
}

func (m *Member) Profile() *MemberProfile {
	return &MemberProfile{
		Registration: m.Registration,
		Name:         m.Name,
		Gender:       m.Gender,
		DOB:          m.DOB,
		FatherName:   m.FatherName,
		MotherName:   m.MotherName,
		Contact:      m.Contact,
		Email:        m.Email,
		Address:      m.Address,
		Aadhaar:      m.Aadhaar,
		PreparingFor: m.PreparingFor,
		Image:        m.Image,
		Shift:        m.Shift,
	}
}
