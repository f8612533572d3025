package game

import (
	"SurePicks-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	GameRepository interface {
		CreateGame(ctx context.Context, game *entities.Game) error
		GetGameByID(ctx context.Context, id string) (*entities.Game, error)
		UpdateGame(ctx context.Context, game *entities.Game) error
		DeleteGame(ctx context.Context, id string) error
		GetGames(ctx context.Context) ([]*entities.Game, error)
		GetActiveGames(ctx context.Context) ([]*entities.Game, error)
		DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
		CountGames(ctx context.Context) (int64, error)
		CountGamesByStatus(ctx context.Context, status string) (int64, error)
		CountOrdersByGame(ctx context.Context, gameID string) (int64, error)
	}

	gameRepository struct {
		db *gorm.DB
	}
)

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateGame(ctx context.Context, game *entities.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetGameByID(ctx context.Context, id string) (*entities.Game, error) {
	var game entities.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) UpdateGame(ctx context.Context, game *entities.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) DeleteGame(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Game{}).Error
}

func (r *gameRepository) GetGames(ctx context.Context) ([]*entities.Game, error) {
	var games []*entities.Game
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) GetActiveGames(ctx context.Context) ([]*entities.Game, error) {
	var games []*entities.Game
	if err := r.db.WithContext(ctx).
		Where("status = ? AND archived_at IS NULL", entities.GameStatusActive).
		Order("created_at DESC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND archived_at IS NOT NULL AND archived_at < ?",
			entities.GameStatusArchived, cutoff).
		Delete(&entities.Game{})
	return result.RowsAffected, result.Error
}

func (r *gameRepository) CountGames(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Game{}).Count(&count).Error
	return count, err
}

func (r *gameRepository) CountGamesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Game{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *gameRepository) CountOrdersByGame(ctx context.Context, gameID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}
