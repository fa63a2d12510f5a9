package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/petrolube/lubedash-backend/pkg/db/models"
	"github.com/petrolube/lubedash-backend/pkg/enums"
)

// ClientInput is the request payload for creating a party record.
type ClientInput struct {
	PartyName string `json:"partyName"`
	PartyCode string `json:"partyCode"`
	City      string `json:"city"`
}

// ClientDTO is the transport shape of a party record. The generated password
// is included: these are issued credentials the admin hands to the party, not
// operator logins.
type ClientDTO struct {
	ID        uuid.UUID          `json:"id"`
	PartyName string             `json:"partyName"`
	PartyCode string             `json:"partyCode"`
	City      string             `json:"city"`
	Username  string             `json:"username"`
	Password  string             `json:"password"`
	Status    enums.RecordStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreateClientResult pairs the persisted record with the credentials that
// were synthesized for it.
type CreateClientResult struct {
	Client      *ClientDTO  `json:"client"`
	Credentials Credentials `json:"credentials"`
}

func FromModel(m *models.Client) *ClientDTO {
	if m == nil {
		return nil
	}
	return &ClientDTO{
		ID:        m.ID,
		PartyName: m.PartyName,
		PartyCode: m.PartyCode,
		City:      m.City,
		Username:  m.Username,
		Password:  m.Password,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
