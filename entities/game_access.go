package entities

import (
	"github.com/google/uuid"
)

const (
	AccessTypePurchase = "purchase"
	AccessTypeRecovery = "recovery"
)

// GameAccess is an admin-granted entitlement that opens a game without a
// payment. The composite unique index keeps repeated grants for the same
// pair idempotent; game fields are denormalized so the grant outlives
// archival or deletion of the game, same as orders.
type GameAccess struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"uniqueIndex:idx_game_access_user_game" json:"user_id"`
	GameID      uuid.UUID `gorm:"uniqueIndex:idx_game_access_user_game" json:"game_id"`
	AccessType  string    `json:"access_type"` // recovery
	GameName    string    `json:"game_name"`
	GameType    string    `json:"game_type"`
	BookingCode string    `json:"booking_code"`

	User *User `gorm:"foreignKey:UserID"`
	Game *Game `gorm:"foreignKey:GameID"`
	Timestamp
}
