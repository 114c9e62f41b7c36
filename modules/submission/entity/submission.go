package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// FileDescriptor points at an uploaded promo file in blob storage. The
// bytes themselves never pass through this service.
type FileDescriptor struct {
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"storage_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type PromoMaterials struct {
	Files       []FileDescriptor `json:"files"`
	Description string           `json:"description"`
}

func (p PromoMaterials) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PromoMaterials) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

type GuestEntry struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type GuestList []GuestEntry

func (g GuestList) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GuestList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, g)
}

// PaymentInfo is stored for the organizer's payout bookkeeping; nothing is
// processed here. AccountNumber and ResidentNumber are ciphertext in the
// row; the service encrypts before persisting and decrypts on read.
type PaymentInfo struct {
	AccountHolder       string `json:"account_holder"`
	BankName            string `json:"bank_name"`
	AccountNumber       string `json:"account_number"`
	ResidentNumber      string `json:"resident_number"`
	PreferDirectContact bool   `json:"prefer_direct_contact"`
}

func (p PaymentInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PaymentInfo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

// Submission holds a DJ's materials for one timeslot. The UNIQUE index on
// timeslot_id enforces at-most-one; UniqueLink denormalizes the redeemed
// token.
type Submission struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	EventID        uuid.UUID      `db:"event_id" json:"event_id"`
	TimeslotID     uuid.UUID      `db:"timeslot_id" json:"timeslot_id"`
	UniqueLink     string         `db:"unique_link" json:"-"`
	PromoMaterials PromoMaterials `db:"promo_materials" json:"promo_materials"`
	GuestList      GuestList      `db:"guest_list" json:"guest_list"`
	PaymentInfo    PaymentInfo    `db:"payment_info" json:"payment_info"`
	SubmittedAt    time.Time      `db:"submitted_at" json:"submitted_at"`
	LastUpdatedAt  time.Time      `db:"last_updated_at" json:"last_updated_at"`
}
