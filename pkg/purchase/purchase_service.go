package purchase

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/entities"
	"SurePicks-Backend/internal/utils"
	"SurePicks-Backend/internal/utils/mailing"
	"SurePicks-Backend/pkg/game"
	"SurePicks-Backend/pkg/paystack"
	"SurePicks-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PurchaseService interface {
		InitiatePurchase(ctx context.Context, userID string, req domain.InitiatePurchaseRequest) (*domain.InitiatePurchaseResponse, error)
		VerifyPurchase(ctx context.Context, reference string) (*domain.OrderResponse, error)
		HandleWebhookEvent(ctx context.Context, event domain.PaystackWebhookEvent) error
		HasAccess(ctx context.Context, userID, gameID string) (bool, error)
		GrantAccess(ctx context.Context, req domain.GrantAccessRequest) error
		GetGameDetail(ctx context.Context, userID, gameID string) (*domain.GameDetailResponse, error)
		GetPurchaseHistory(ctx context.Context, userID string, page, limit int) ([]*domain.OrderResponse, int64, error)
		GetPurchasedGames(ctx context.Context, userID string) ([]*domain.PurchasedGameResponse, error)
		GetRecoveryGames(ctx context.Context, userID string) ([]*domain.PurchasedGameResponse, error)
		GetDashboardStats(ctx context.Context) (*domain.DashboardResponse, error)
	}

	purchaseService struct {
		purchaseRepository PurchaseRepository
		gameRepository     game.GameRepository
		userRepository     user.UserRepository
		paystackService    paystack.PaystackService
	}
)

func NewPurchaseService(
	purchaseRepository PurchaseRepository,
	gameRepository game.GameRepository,
	userRepository user.UserRepository,
	paystackService paystack.PaystackService,
) PurchaseService {
	return &purchaseService{
		purchaseRepository: purchaseRepository,
		gameRepository:     gameRepository,
		userRepository:     userRepository,
		paystackService:    paystackService,
	}
}

func orderResponse(order *entities.Order) *domain.OrderResponse {
	return &domain.OrderResponse{
		ID:          order.ID.String(),
		Amount:      order.Amount,
		Currency:    order.Currency,
		Status:      order.Status,
		ProviderRef: order.ProviderRef,
		GameID:      order.GameID.String(),
		GameName:    order.GameName,
		GameType:    order.GameType,
		BookingCode: order.BookingCode,
		CreatedAt:   order.CreatedAt,
	}
}

// InitiatePurchase charges the stored catalog price, never an amount the
// client sends. User and game IDs ride along as provider-side metadata so
// verification does not depend on client-supplied identifiers.
func (s *purchaseService) InitiatePurchase(ctx context.Context, userID string, req domain.InitiatePurchaseRequest) (*domain.InitiatePurchaseResponse, error) {
	target, err := s.gameRepository.GetGameByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	if target.Price <= 0 {
		return nil, domain.ErrGameNotPurchasable
	}

	buyer, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	initResp, err := s.paystackService.InitializeTransaction(ctx, domain.PaystackInitRequest{
		Email:  buyer.Email,
		Amount: target.Price,
		Metadata: map[string]string{
			domain.MetadataUserID: userID,
			domain.MetadataGameID: target.ID.String(),
		},
		CallbackURL: utils.GetConfig("APP_URL") + "/purchase/callback",
	})
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}

	return &domain.InitiatePurchaseResponse{
		AuthorizationURL: initResp.AuthorizationURL,
		Reference:        initResp.Reference,
	}, nil
}

// VerifyPurchase is the single entry point for all three notification
// channels (redirect callback, webhook, client poll) and is idempotent:
// the unique index on provider_ref arbitrates concurrent duplicates.
func (s *purchaseService) VerifyPurchase(ctx context.Context, reference string) (*domain.OrderResponse, error) {
	existing, err := s.purchaseRepository.GetOrderByReference(ctx, reference)
	if err == nil {
		return orderResponse(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	verify, err := s.paystackService.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !verify.Success {
		return nil, domain.ErrVerificationFailed
	}

	userID, okUser := verify.Metadata[domain.MetadataUserID]
	gameID, okGame := verify.Metadata[domain.MetadataGameID]
	if !okUser || !okGame || userID == "" || gameID == "" {
		return nil, domain.ErrMissingMetadata
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrMissingMetadata
	}
	gameUUID, err := uuid.Parse(gameID)
	if err != nil {
		return nil, domain.ErrMissingMetadata
	}

	target, err := s.gameRepository.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	order := &entities.Order{
		ID:          uuid.New(),
		UserID:      userUUID,
		GameID:      gameUUID,
		Amount:      verify.Amount,
		Currency:    domain.CurrencyGHS,
		Status:      entities.OrderStatusPaid,
		ProviderRef: reference,
		GameName:    target.GameName,
		GameType:    target.GameType,
		BookingCode: target.BookingCode,
	}

	if err := s.purchaseRepository.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another channel recorded this reference first; the stored
			// row is the winner.
			winner, readErr := s.purchaseRepository.GetOrderByReference(ctx, reference)
			if readErr != nil {
				return nil, readErr
			}
			return orderResponse(winner), nil
		}
		return nil, err
	}

	s.sendReceipt(verify.CustomerEmail, order)

	return orderResponse(order), nil
}

// sendReceipt is best effort; a mail failure never fails the verification.
func (s *purchaseService) sendReceipt(email string, order *entities.Order) {
	if email == "" {
		return
	}
	body := fmt.Sprintf(
		"<p>Your payment of %s %.2f for <b>%s</b> was successful.</p><p>Booking code: <b>%s</b></p>",
		order.Currency, order.Amount, order.GameName, order.BookingCode,
	)
	if err := mailing.SendMail(email, "Your booking code", body); err != nil {
		log.Printf("failed to send receipt mail for %s: %v", order.ProviderRef, err)
	}
}

func (s *purchaseService) HandleWebhookEvent(ctx context.Context, event domain.PaystackWebhookEvent) error {
	if event.Event != domain.PaystackEventChargeSuccess {
		return nil
	}
	if event.Data.Reference == "" {
		return domain.ErrTransactionNotFound
	}
	_, err := s.VerifyPurchase(ctx, event.Data.Reference)
	return err
}

// HasAccess is a pure read: free games are open to everyone, paid games
// require a recorded order or an admin grant for the pair.
func (s *purchaseService) HasAccess(ctx context.Context, userID, gameID string) (bool, error) {
	paid, err := s.purchaseRepository.HasPaidOrder(ctx, userID, gameID)
	if err != nil {
		return false, err
	}
	if paid {
		return true, nil
	}

	granted, err := s.purchaseRepository.HasAccessGrant(ctx, userID, gameID)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	target, err := s.gameRepository.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrGameNotFound
		}
		return false, err
	}
	return target.Price == 0, nil
}

// GrantAccess records a recovery entitlement without a payment. The
// composite unique index makes a repeated grant for the same pair a
// conflict rather than a second row.
func (s *purchaseService) GrantAccess(ctx context.Context, req domain.GrantAccessRequest) error {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	if _, err := s.userRepository.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	target, err := s.gameRepository.GetGameByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGameNotFound
		}
		return err
	}

	grant := &entities.GameAccess{
		ID:          uuid.New(),
		UserID:      userUUID,
		GameID:      target.ID,
		AccessType:  entities.AccessTypeRecovery,
		GameName:    target.GameName,
		GameType:    target.GameType,
		BookingCode: target.BookingCode,
	}

	if err := s.purchaseRepository.CreateAccessGrant(ctx, grant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAccessAlreadyGranted
		}
		return err
	}
	return nil
}

func (s *purchaseService) GetGameDetail(ctx context.Context, userID, gameID string) (*domain.GameDetailResponse, error) {
	target, err := s.gameRepository.GetGameByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	access, err := s.HasAccess(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	resp := &domain.GameDetailResponse{
		ID:          target.ID.String(),
		GameName:    target.GameName,
		DisplayType: game.MaskGameType(target.GameType),
		TotalOdds:   target.TotalOdds,
		Price:       target.Price,
		MatchCount:  len(target.Matches),
		GameDate:    target.GameDate,
		HasAccess:   access,
	}

	if access {
		resp.BookingCode = target.BookingCode
		matches := make([]domain.MatchResponse, 0, len(target.Matches))
		for _, m := range target.Matches {
			matches = append(matches, domain.MatchResponse{
				HomeTeam: m.HomeTeam,
				AwayTeam: m.AwayTeam,
				League:   m.League,
				Odds:     m.Odds,
				Status:   m.Status,
			})
		}
		resp.Matches = matches
	}
	return resp, nil
}

func (s *purchaseService) GetDashboardStats(ctx context.Context) (*domain.DashboardResponse, error) {
	totalUsers, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalGames, err := s.gameRepository.CountGames(ctx)
	if err != nil {
		return nil, err
	}

	activeGames, err := s.gameRepository.CountGamesByStatus(ctx, entities.GameStatusActive)
	if err != nil {
		return nil, err
	}

	archivedGames, err := s.gameRepository.CountGamesByStatus(ctx, entities.GameStatusArchived)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.purchaseRepository.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.purchaseRepository.GetRecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}

	recentOrders := make([]domain.OrderResponse, 0, len(recent))
	for _, order := range recent {
		recentOrders = append(recentOrders, *orderResponse(order))
	}

	return &domain.DashboardResponse{
		TotalUsers:    totalUsers,
		TotalGames:    totalGames,
		ActiveGames:   activeGames,
		ArchivedGames: archivedGames,
		TotalOrders:   totalOrders,
		RecentOrders:  recentOrders,
	}, nil
}

func (s *purchaseService) GetPurchaseHistory(ctx context.Context, userID string, page, limit int) ([]*domain.OrderResponse, int64, error) {
	orders, count, err := s.purchaseRepository.GetUserOrders(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, orderResponse(order))
	}
	return result, count, nil
}

// purchasedGame builds one entitlement row from the denormalized fields,
// then fills in the match list from the catalog when the game still
// exists. Deleted games keep their booking code but lose the matches.
func (s *purchaseService) purchasedGame(ctx context.Context, accessType string, gameID uuid.UUID, gameName, gameType, bookingCode string, grantedAt time.Time) *domain.PurchasedGameResponse {
	resp := &domain.PurchasedGameResponse{
		GameID:      gameID.String(),
		GameName:    gameName,
		DisplayType: game.MaskGameType(gameType),
		BookingCode: bookingCode,
		AccessType:  accessType,
		GrantedAt:   grantedAt,
	}

	target, err := s.gameRepository.GetGameByID(ctx, gameID.String())
	if err != nil {
		return resp
	}

	resp.TotalOdds = target.TotalOdds
	resp.GameDate = target.GameDate
	matches := make([]domain.MatchResponse, 0, len(target.Matches))
	for _, m := range target.Matches {
		matches = append(matches, domain.MatchResponse{
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			League:   m.League,
			Odds:     m.Odds,
			Status:   m.Status,
		})
	}
	resp.Matches = matches
	return resp
}

// GetPurchasedGames returns every entitlement the user holds, paid orders
// and admin grants alike, booking codes included.
func (s *purchaseService) GetPurchasedGames(ctx context.Context, userID string) ([]*domain.PurchasedGameResponse, error) {
	orders, err := s.purchaseRepository.GetAllUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	grants, err := s.purchaseRepository.GetUserAccessGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PurchasedGameResponse, 0, len(orders)+len(grants))
	for _, order := range orders {
		result = append(result, s.purchasedGame(ctx,
			entities.AccessTypePurchase, order.GameID,
			order.GameName, order.GameType, order.BookingCode, order.CreatedAt))
	}
	for _, grant := range grants {
		result = append(result, s.purchasedGame(ctx,
			grant.AccessType, grant.GameID,
			grant.GameName, grant.GameType, grant.BookingCode, grant.CreatedAt))
	}
	return result, nil
}

// GetRecoveryGames lists only admin-granted entitlements, the recovery
// tab of the user dashboard.
func (s *purchaseService) GetRecoveryGames(ctx context.Context, userID string) ([]*domain.PurchasedGameResponse, error) {
	grants, err := s.purchaseRepository.GetUserAccessGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PurchasedGameResponse, 0, len(grants))
	for _, grant := range grants {
		result = append(result, s.purchasedGame(ctx,
			grant.AccessType, grant.GameID,
			grant.GameName, grant.GameType, grant.BookingCode, grant.CreatedAt))
	}
	return result, nil
}
