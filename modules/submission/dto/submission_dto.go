package dto

import (
	"time"

	"rite-api/modules/submission/entity"
)

type FileDescriptorDTO struct {
	Name       string `json:"name"`
	MimeType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	StorageKey string `json:"storage_key"`
}

type GuestEntryDTO struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type PaymentInfoDTO struct {
	AccountHolder       string `json:"account_holder"`
	BankName            string `json:"bank_name"`
	AccountNumber       string `json:"account_number"`
	ResidentNumber      string `json:"resident_number"`
	PreferDirectContact bool   `json:"prefer_direct_contact"`
}

// SubmissionPayload is everything a DJ submits through their unique link.
// Re-submitting replaces all three sections.
type SubmissionPayload struct {
	Files            []FileDescriptorDTO `json:"files"`
	PromoDescription string              `json:"promo_description"`
	GuestList        []GuestEntryDTO     `json:"guest_list"`
	PaymentInfo      PaymentInfoDTO      `json:"payment_info"`
}

type SubmissionResponse struct {
	ID             string                `json:"id"`
	TimeslotID     string                `json:"timeslot_id"`
	PromoMaterials entity.PromoMaterials `json:"promo_materials"`
	GuestList      entity.GuestList      `json:"guest_list"`
	PaymentInfo    PaymentInfoDTO        `json:"payment_info"`
	SubmittedAt    time.Time             `json:"submitted_at"`
	LastUpdatedAt  time.Time             `json:"last_updated_at"`
}

type UploadTicketRequest struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}
