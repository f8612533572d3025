package entities

import (
	"github.com/google/uuid"
)

const OrderStatusPaid = "Paid"

// Order is one confirmed payment. ProviderRef carries a unique index so the
// ledger itself arbitrates duplicate verification attempts; game fields are
// denormalized so the record outlives archival or deletion of the game.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	GameID      uuid.UUID `json:"game_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"` // Paid
	ProviderRef string    `gorm:"uniqueIndex" json:"provider_ref"`
	GameName    string    `json:"game_name"`
	GameType    string    `json:"game_type"`
	BookingCode string    `json:"booking_code"`

	User *User `gorm:"foreignKey:UserID"`
	Game *Game `gorm:"foreignKey:GameID"`
	Timestamp
}
