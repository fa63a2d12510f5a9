package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// Client is a distributor party account. The username/password pair is the
// generated initial credential handed to the party, not an operator login.
type Client struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PartyName string             `gorm:"column:party_name;not null"`
	PartyCode string             `gorm:"column:party_code;not null;uniqueIndex"`
	City      string             `gorm:"column:city;not null"`
	Username  string             `gorm:"column:username;not null;uniqueIndex"`
	Password  string             `gorm:"column:password;not null"`
	Status    enums.RecordStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
