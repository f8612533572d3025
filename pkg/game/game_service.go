package game

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/entities"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type (
	GameService interface {
		UploadGame(ctx context.Context, req domain.UploadGameRequest) (*domain.AdminGameResponse, error)
		UpdateGame(ctx context.Context, req domain.UpdateGameRequest) (*domain.AdminGameResponse, error)
		SetMatchStatus(ctx context.Context, req domain.SetMatchStatusRequest) error
		ArchiveGame(ctx context.Context, gameID string) error
		RestoreGame(ctx context.Context, gameID string) error
		DeleteGame(ctx context.Context, gameID string) error
		ListGames(ctx context.Context) ([]*domain.AdminGameResponse, error)
		ListPublicGames(ctx context.Context) ([]*domain.PublicGameResponse, error)
		SweepArchived(ctx context.Context) (int64, error)
	}

	gameService struct {
		gameRepository GameRepository
	}
)

func NewGameService(gameRepository GameRepository) GameService {
	return &gameService{gameRepository: gameRepository}
}

// NormalizeMatchStatus collapses caller-supplied casing to the three
// statuses the catalog stores. Anything unrecognized becomes Pending.
func NormalizeMatchStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "won":
		return entities.MatchStatusWon
	case "lost":
		return entities.MatchStatusLost
	default:
		return entities.MatchStatusPending
	}
}

// MaskGameType maps free-form admin game types to the fixed display set.
func MaskGameType(gameType string) string {
	if gameType == "" {
		return "Unknown"
	}
	t := strings.ToLower(gameType)
	switch {
	case strings.Contains(t, "vip"):
		return "VIP"
	case strings.Contains(t, "correct"):
		return "Correct Score"
	case strings.Contains(t, "recovery"):
		return "Recovery"
	case strings.Contains(t, "free"):
		return "Free"
	}
	return gameType
}

func buildMatches(reqs []domain.MatchRequest) entities.MatchList {
	matches := make(entities.MatchList, 0, len(reqs))
	for _, m := range reqs {
		matches = append(matches, entities.Match{
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			League:   m.League,
			Odds:     m.Odds,
			Status:   NormalizeMatchStatus(m.Status),
		})
	}
	return matches
}

func matchResponses(matches entities.MatchList) []domain.MatchResponse {
	result := make([]domain.MatchResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, domain.MatchResponse{
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			League:   m.League,
			Odds:     m.Odds,
			Status:   m.Status,
		})
	}
	return result
}

func (s *gameService) adminResponse(game *entities.Game, purchaseCount int64) *domain.AdminGameResponse {
	return &domain.AdminGameResponse{
		ID:            game.ID.String(),
		GameName:      game.GameName,
		GameType:      game.GameType,
		BookingCode:   game.BookingCode,
		TotalOdds:     game.TotalOdds,
		Price:         game.Price,
		Matches:       matchResponses(game.Matches),
		GameDate:      game.GameDate,
		Status:        game.Status,
		ArchivedAt:    game.ArchivedAt,
		PurchaseCount: purchaseCount,
		CreatedAt:     game.CreatedAt,
		UpdatedAt:     game.UpdatedAt,
	}
}

func (s *gameService) UploadGame(ctx context.Context, req domain.UploadGameRequest) (*domain.AdminGameResponse, error) {
	if strings.TrimSpace(req.BookingCode) == "" {
		return nil, domain.ErrBookingCodeMissing
	}
	if strings.TrimSpace(req.GameName) == "" {
		return nil, domain.ErrGameNameMissing
	}
	if len(req.Matches) == 0 {
		return nil, domain.ErrMatchDataMissing
	}

	game := &entities.Game{
		GameName:    req.GameName,
		GameType:    req.GameType,
		BookingCode: req.BookingCode,
		TotalOdds:   req.TotalOdds,
		Price:       req.Price,
		Matches:     buildMatches(req.Matches),
		GameDate:    req.GameDate,
		Status:      entities.GameStatusActive,
	}

	if err := s.gameRepository.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return s.adminResponse(game, 0), nil
}

func (s *gameService) UpdateGame(ctx context.Context, req domain.UpdateGameRequest) (*domain.AdminGameResponse, error) {
	game, err := s.gameRepository.GetGameByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	game.GameType = req.GameType
	game.TotalOdds = req.TotalOdds
	game.Price = req.Price
	game.Matches = buildMatches(req.Matches)

	if err := s.gameRepository.UpdateGame(ctx, game); err != nil {
		return nil, err
	}

	count, err := s.gameRepository.CountOrdersByGame(ctx, game.ID.String())
	if err != nil {
		return nil, err
	}
	return s.adminResponse(game, count), nil
}

func (s *gameService) SetMatchStatus(ctx context.Context, req domain.SetMatchStatusRequest) error {
	game, err := s.gameRepository.GetGameByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}

	if req.MatchIndex < 0 || req.MatchIndex >= len(game.Matches) {
		return domain.ErrInvalidMatchIndex
	}

	game.Matches[req.MatchIndex].Status = NormalizeMatchStatus(req.Status)
	return s.gameRepository.UpdateGame(ctx, game)
}

func (s *gameService) ArchiveGame(ctx context.Context, gameID string) error {
	game, err := s.gameRepository.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}

	now := time.Now()
	game.Status = entities.GameStatusArchived
	game.ArchivedAt = &now
	return s.gameRepository.UpdateGame(ctx, game)
}

func (s *gameService) RestoreGame(ctx context.Context, gameID string) error {
	game, err := s.gameRepository.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}

	if game.Status != entities.GameStatusArchived {
		return domain.ErrGameNotArchived
	}

	game.Status = entities.GameStatusActive
	game.ArchivedAt = nil
	return s.gameRepository.UpdateGame(ctx, game)
}

func (s *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if _, err := s.gameRepository.GetGameByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}
	return s.gameRepository.DeleteGame(ctx, gameID)
}

// ListGames is the admin listing. It runs the retention sweep first so
// archived games past the window never reach an operator's screen.
func (s *gameService) ListGames(ctx context.Context) ([]*domain.AdminGameResponse, error) {
	if _, err := s.SweepArchived(ctx); err != nil {
		return nil, err
	}

	games, err := s.gameRepository.GetGames(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.AdminGameResponse, 0, len(games))
	for _, game := range games {
		count, err := s.gameRepository.CountOrdersByGame(ctx, game.ID.String())
		if err != nil {
			return nil, err
		}
		result = append(result, s.adminResponse(game, count))
	}
	return result, nil
}

// ListPublicGames never includes booking codes; the match list is only
// serialized for free games, paid games expose the count.
func (s *gameService) ListPublicGames(ctx context.Context) ([]*domain.PublicGameResponse, error) {
	games, err := s.gameRepository.GetActiveGames(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PublicGameResponse, 0, len(games))
	for _, game := range games {
		resp := &domain.PublicGameResponse{
			ID:          game.ID.String(),
			GameName:    game.GameName,
			DisplayType: MaskGameType(game.GameType),
			TotalOdds:   game.TotalOdds,
			Price:       game.Price,
			MatchCount:  len(game.Matches),
			GameDate:    game.GameDate,
			CreatedAt:   game.CreatedAt,
		}
		if game.Price == 0 {
			resp.Matches = matchResponses(game.Matches)
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *gameService) SweepArchived(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-domain.ArchiveRetention)
	return s.gameRepository.DeleteArchivedBefore(ctx, cutoff)
}
