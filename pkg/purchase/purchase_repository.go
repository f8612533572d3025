package purchase

import (
	"SurePicks-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	PurchaseRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByReference(ctx context.Context, reference string) (*entities.Order, error)
		GetUserOrders(ctx context.Context, userID string, page, limit int) ([]*entities.Order, int64, error)
		GetAllUserOrders(ctx context.Context, userID string) ([]*entities.Order, error)
		HasPaidOrder(ctx context.Context, userID, gameID string) (bool, error)
		CountOrders(ctx context.Context) (int64, error)
		GetRecentOrders(ctx context.Context, limit int) ([]*entities.Order, error)
		CreateAccessGrant(ctx context.Context, grant *entities.GameAccess) error
		HasAccessGrant(ctx context.Context, userID, gameID string) (bool, error)
		GetUserAccessGrants(ctx context.Context, userID string) ([]*entities.GameAccess, error)
	}

	purchaseRepository struct {
		db *gorm.DB
	}
)

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// CreateOrder relies on the unique index on provider_ref; a duplicate
// insert surfaces as gorm.ErrDuplicatedKey for the service to resolve.
func (r *purchaseRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *purchaseRepository) GetOrderByReference(ctx context.Context, reference string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Where("provider_ref = ?", reference).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *purchaseRepository) GetUserOrders(ctx context.Context, userID string, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entities.OrderStatusPaid)

	if err := query.Model(&entities.Order{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *purchaseRepository) GetAllUserOrders(ctx context.Context, userID string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, entities.OrderStatusPaid).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *purchaseRepository) HasPaidOrder(ctx context.Context, userID, gameID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("user_id = ? AND game_id = ? AND status = ?",
			userID, gameID, entities.OrderStatusPaid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *purchaseRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Order{}).Count(&count).Error
	return count, err
}

func (r *purchaseRepository) GetRecentOrders(ctx context.Context, limit int) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateAccessGrant relies on the composite unique index on
// (user_id, game_id); granting twice surfaces as gorm.ErrDuplicatedKey.
func (r *purchaseRepository) CreateAccessGrant(ctx context.Context, grant *entities.GameAccess) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *purchaseRepository) HasAccessGrant(ctx context.Context, userID, gameID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.GameAccess{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *purchaseRepository) GetUserAccessGrants(ctx context.Context, userID string) ([]*entities.GameAccess, error) {
	var grants []*entities.GameAccess
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
