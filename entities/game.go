package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	GameStatusActive   = "active"
	GameStatusArchived = "archived"

	MatchStatusPending = "Pending"
	MatchStatusWon     = "Won"
	MatchStatusLost    = "Lost"
)

// Match is a single pick inside a game. The list is stored as one jsonb
// column; statuses are normalized before every write.
type Match struct {
	HomeTeam string  `json:"home_team"`
	AwayTeam string  `json:"away_team"`
	League   string  `json:"league,omitempty"`
	Odds     float64 `json:"odds"`
	Status   string  `json:"status"` // Pending, Won, Lost
}

type MatchList []Match

func (m MatchList) Value() (driver.Value, error) {
	if m == nil {
		m = MatchList{}
	}
	return json.Marshal(m)
}

func (m *MatchList) Scan(value interface{}) error {
	if value == nil {
		*m = MatchList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for match list column")
	}
	return json.Unmarshal(raw, m)
}

type Game struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	GameName    string     `json:"game_name"`
	GameType    string     `json:"game_type"`
	BookingCode string     `json:"booking_code"`
	TotalOdds   float64    `json:"total_odds"`
	Price       float64    `json:"price"` // GHS, 0 means freely accessible
	Matches     MatchList  `gorm:"type:jsonb" json:"matches"`
	GameDate    string     `json:"game_date,omitempty"`
	Status      string     `json:"status"` // active, archived
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`

	Orders []*Order `gorm:"foreignKey:GameID"`
	Timestamp
}
