package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Role is the kind of member an account represents
type Role string

const (
	RoleElder     Role = "elder"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleElder || r == RoleVolunteer
}

// Language is one of the community languages offered in the app
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageMandarin Language = "zh"
	LanguageMalay    Language = "ms"
	LanguageTamil    Language = "ta"
)

// EmergencyContact is who to call on an elder's behalf
type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"required"`
}

// Profile is the role-specific part of an account. Exactly one of the
// concrete profile types backs every account.
type Profile interface {
	Role() Role
}

// ElderProfile holds what volunteers need to know about an elder
type ElderProfile struct {
	Age                    int               `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	Needs                  []string          `json:"needs,omitempty"`
	PreferredCommunication string            `json:"preferredCommunication,omitempty" validate:"omitempty,oneof=text voice video"`
	Languages              []Language        `json:"languages,omitempty" validate:"dive,oneof=en zh ms ta"`
	EmergencyContact       *EmergencyContact `json:"emergencyContact,omitempty"`
}

func (ElderProfile) Role() Role { return RoleElder }

// VolunteerProfile holds what elders need to know about a volunteer
type VolunteerProfile struct {
	ServicesOffered []string   `json:"servicesOffered,omitempty"`
	Languages       []Language `json:"languages,omitempty" validate:"dive,oneof=en zh ms ta"`
}

func (VolunteerProfile) Role() Role { return RoleVolunteer }

// NewProfile returns an empty profile for role
func NewProfile(role Role) (Profile, error) {
	switch role {
	case RoleElder:
		return ElderProfile{}, nil
	case RoleVolunteer:
		return VolunteerProfile{}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// Account is the public projection of a registered member. It never carries
// the credential secret.
type Account struct {
	ID         string    `json:"id" validate:"required" example:"user_3f0c9a52"`
	Email      string    `json:"email" validate:"required,email" example:"elder@example.com"`
	Name       string    `json:"name" validate:"required" example:"John Elder"`
	Role       Role      `json:"role" validate:"required,oneof=elder volunteer" example:"elder"`
	Profile    Profile   `json:"-"`
	CreatedAt  time.Time `json:"createdAt" validate:"required"`
	IsVerified bool      `json:"isVerified"`
}

// IsElder reports whether the account can request assistance
func (a Account) IsElder() bool { return a.Role == RoleElder }

// IsVolunteer reports whether the account can offer help
func (a Account) IsVolunteer() bool { return a.Role == RoleVolunteer }

type accountJSON struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       Role            `json:"role"`
	Profile    json.RawMessage `json:"profile,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	IsVerified bool            `json:"isVerified"`
}

func (a Account) MarshalJSON() ([]byte, error) {
	out := accountJSON{
		ID:         a.ID,
		Email:      a.Email,
		Name:       a.Name,
		Role:       a.Role,
		CreatedAt:  a.CreatedAt,
		IsVerified: a.IsVerified,
	}
	if a.Profile != nil {
		raw, err := json.Marshal(a.Profile)
		if err != nil {
			return nil, err
		}
		out.Profile = raw
	}
	return json.Marshal(out)
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var in accountJSON
	if err := strictUnmarshal(data, &in); err != nil {
		return err
	}
	account, err := in.account()
	if err != nil {
		return err
	}
	*a = account
	return nil
}

func (in accountJSON) account() (Account, error) {
	profile, err := decodeProfile(in.Role, in.Profile)
	if err != nil {
		return Account{}, err
	}
	return Account{
		ID:         in.ID,
		Email:      in.Email,
		Name:       in.Name,
		Role:       in.Role,
		Profile:    profile,
		CreatedAt:  in.CreatedAt,
		IsVerified: in.IsVerified,
	}, nil
}

// strictUnmarshal rejects fields dst does not declare
func strictUnmarshal(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func decodeProfile(role Role, raw json.RawMessage) (Profile, error) {
	switch role {
	case RoleElder:
		var p ElderProfile
		if len(raw) > 0 {
			if err := strictUnmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("elder profile: %w", err)
			}
		}
		return p, nil
	case RoleVolunteer:
		var p VolunteerProfile
		if len(raw) > 0 {
			if err := strictUnmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("volunteer profile: %w", err)
			}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// StoredAccount is the persisted form of an account, secret included
type StoredAccount struct {
	Account
	PasswordHash string `json:"passwordHash" validate:"required"`
}

func (s StoredAccount) MarshalJSON() ([]byte, error) {
	base, err := s.Account.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	hash, err := json.Marshal(s.PasswordHash)
	if err != nil {
		return nil, err
	}
	fields["passwordHash"] = hash
	return json.Marshal(fields)
}

func (s *StoredAccount) UnmarshalJSON(data []byte) error {
	var in struct {
		accountJSON
		PasswordHash string `json:"passwordHash"`
	}
	if err := strictUnmarshal(data, &in); err != nil {
		return err
	}
	account, err := in.account()
	if err != nil {
		return err
	}
	*s = StoredAccount{Account: account, PasswordHash: in.PasswordHash}
	return nil
}

// Public drops the credential secret
func (s StoredAccount) Public() Account {
	return s.Account
}
