// Package store persists created profiles.
package store

import (
	"context"
	"errors"
	"time"
)

// SystemUserID is recorded as the creator of every profile; the service has
// no authentication.
const SystemUserID = "00000000000000000000000000000001"

var (
	ErrNotFound  = errors.New("store: profile not found")
	ErrDuplicate = errors.New("store: profile id already exists")
	ErrMissingID = errors.New("store: profile id is empty")
)

// Record is a stored profile. BirthDay keeps the DD/MM/YYYY wire value.
type Record struct {
	ID            string    `bson:"_id" json:"id"`
	FirstName     string    `bson:"first_name" json:"firstName"`
	LastName      string    `bson:"last_name" json:"lastName"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone" json:"phone"`
	ProfileBase64 string    `bson:"profile_base64" json:"profileBase64"`
	BirthDay      string    `bson:"birth_day" json:"birthDay"`
	Occupation    string    `bson:"occupation" json:"occupation"`
	Sex           string    `bson:"sex" json:"sex"`
	CreatedBy     string    `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Repository stores profile records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
}

func stamp(record *Record, now time.Time) {
	if record.CreatedBy == "" {
		record.CreatedBy = SystemUserID
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
}
