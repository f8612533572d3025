package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessUploadGame     = "game uploaded successfully"
	MessageSuccessUpdateGame     = "game updated successfully"
	MessageSuccessDeleteGame     = "game deleted successfully"
	MessageSuccessArchiveGame    = "game archived successfully"
	MessageSuccessRestoreGame    = "game restored successfully"
	MessageSuccessGetGames       = "games retrieved successfully"
	MessageSuccessGetGameDetail  = "game details retrieved successfully"
	MessageSuccessSetMatchStatus = "match status updated successfully"
	MessageSuccessGetDashboard   = "dashboard statistics retrieved successfully"

	MessageFailedUploadGame     = "failed to upload game"
	MessageFailedUpdateGame     = "failed to update game"
	MessageFailedDeleteGame     = "failed to delete game"
	MessageFailedArchiveGame    = "failed to archive game"
	MessageFailedRestoreGame    = "failed to restore game"
	MessageFailedGetGames       = "failed to retrieve games"
	MessageFailedGetGameDetail  = "failed to retrieve game details"
	MessageFailedSetMatchStatus = "failed to update match status"
	MessageFailedGetDashboard   = "failed to retrieve dashboard statistics"

	ErrGameNotFound       = errors.New("game not found")
	ErrBookingCodeMissing = errors.New("booking code is required")
	ErrGameNameMissing    = errors.New("game name is required")
	ErrMatchDataMissing   = errors.New("match data is required")
	ErrInvalidMatchIndex  = errors.New("match index out of range")
	ErrGameNotArchived    = errors.New("game is not archived")
)

// Games archived longer than this are removed for good by the lazy sweep.
const ArchiveRetention = 72 * time.Hour

type (
	MatchRequest struct {
		HomeTeam string  `json:"home_team" validate:"required"`
		AwayTeam string  `json:"away_team" validate:"required"`
		League   string  `json:"league"`
		Odds     float64 `json:"odds" validate:"gte=0"`
		Status   string  `json:"status"`
	}

	UploadGameRequest struct {
		GameName    string         `json:"game_name" validate:"required"`
		GameType    string         `json:"game_type"`
		BookingCode string         `json:"booking_code" validate:"required"`
		TotalOdds   float64        `json:"total_odds" validate:"gte=0"`
		Price       float64        `json:"price" validate:"gte=0"`
		Matches     []MatchRequest `json:"matches" validate:"required,min=1,dive"`
		GameDate    string         `json:"game_date"`
	}

	UpdateGameRequest struct {
		GameID    string         `json:"game_id" validate:"required,uuid"`
		GameType  string         `json:"game_type"`
		TotalOdds float64        `json:"total_odds" validate:"gte=0"`
		Price     float64        `json:"price" validate:"gte=0"`
		Matches   []MatchRequest `json:"matches" validate:"required,min=1,dive"`
	}

	SetMatchStatusRequest struct {
		GameID     string `json:"game_id" validate:"required,uuid"`
		MatchIndex int    `json:"match_index" validate:"gte=0"`
		Status     string `json:"status" validate:"required"`
	}

	ArchiveGameRequest struct {
		GameID string `json:"game_id" validate:"required,uuid"`
	}

	MatchResponse struct {
		HomeTeam string  `json:"home_team"`
		AwayTeam string  `json:"away_team"`
		League   string  `json:"league,omitempty"`
		Odds     float64 `json:"odds"`
		Status   string  `json:"status"`
	}

	// PublicGameResponse never carries the booking code; the match list is
	// present only for free games, everyone else sees the count.
	PublicGameResponse struct {
		ID          string          `json:"id"`
		GameName    string          `json:"game_name"`
		DisplayType string          `json:"display_type"`
		TotalOdds   float64         `json:"total_odds"`
		Price       float64         `json:"price"`
		MatchCount  int             `json:"match_count"`
		Matches     []MatchResponse `json:"matches,omitempty"`
		GameDate    string          `json:"game_date,omitempty"`
		CreatedAt   time.Time       `json:"created_at"`
	}

	GameDetailResponse struct {
		ID          string          `json:"id"`
		GameName    string          `json:"game_name"`
		DisplayType string          `json:"display_type"`
		TotalOdds   float64         `json:"total_odds"`
		Price       float64         `json:"price"`
		BookingCode string          `json:"booking_code,omitempty"`
		Matches     []MatchResponse `json:"matches,omitempty"`
		MatchCount  int             `json:"match_count"`
		GameDate    string          `json:"game_date,omitempty"`
		HasAccess   bool            `json:"has_access"`
	}

	AdminGameResponse struct {
		ID            string          `json:"id"`
		GameName      string          `json:"game_name"`
		GameType      string          `json:"game_type"`
		BookingCode   string          `json:"booking_code"`
		TotalOdds     float64         `json:"total_odds"`
		Price         float64         `json:"price"`
		Matches       []MatchResponse `json:"matches"`
		GameDate      string          `json:"game_date,omitempty"`
		Status        string          `json:"status"`
		ArchivedAt    *time.Time      `json:"archived_at,omitempty"`
		PurchaseCount int64           `json:"purchase_count"`
		CreatedAt     time.Time       `json:"created_at"`
		UpdatedAt     time.Time       `json:"updated_at"`
	}

	DashboardResponse struct {
		TotalUsers    int64           `json:"total_users"`
		TotalGames    int64           `json:"total_games"`
		ActiveGames   int64           `json:"active_games"`
		ArchivedGames int64           `json:"archived_games"`
		SweptGames    int64           `json:"swept_games"`
		TotalOrders   int64           `json:"total_orders"`
		RecentOrders  []OrderResponse `json:"recent_orders"`
	}
)
