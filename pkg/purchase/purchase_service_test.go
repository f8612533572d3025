package purchase

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/entities"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePurchaseRepository struct {
	mu     sync.Mutex
	orders map[string]*entities.Order      // keyed by provider reference
	grants map[string]*entities.GameAccess // keyed by userID/gameID
}

func newFakePurchaseRepository() *fakePurchaseRepository {
	return &fakePurchaseRepository{
		orders: make(map[string]*entities.Order),
		grants: make(map[string]*entities.GameAccess),
	}
}

func (f *fakePurchaseRepository) CreateOrder(_ context.Context, order *entities.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.orders[order.ProviderRef]; exists {
		return gorm.ErrDuplicatedKey
	}
	stored := *order
	stored.CreatedAt = time.Now()
	f.orders[order.ProviderRef] = &stored
	return nil
}

func (f *fakePurchaseRepository) GetOrderByReference(_ context.Context, reference string) (*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakePurchaseRepository) GetUserOrders(_ context.Context, userID string, _, _ int) ([]*entities.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entities.Order
	for _, order := range f.orders {
		if order.UserID.String() == userID {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakePurchaseRepository) GetAllUserOrders(_ context.Context, userID string) ([]*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entities.Order
	for _, order := range f.orders {
		if order.UserID.String() == userID {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakePurchaseRepository) HasPaidOrder(_ context.Context, userID, gameID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.UserID.String() == userID && order.GameID.String() == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePurchaseRepository) CountOrders(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

func (f *fakePurchaseRepository) GetRecentOrders(_ context.Context, limit int) ([]*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entities.Order
	for _, order := range f.orders {
		if len(result) == limit {
			break
		}
		copied := *order
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakePurchaseRepository) CreateAccessGrant(_ context.Context, grant *entities.GameAccess) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := grant.UserID.String() + "/" + grant.GameID.String()
	if _, exists := f.grants[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	stored := *grant
	stored.CreatedAt = time.Now()
	f.grants[key] = &stored
	return nil
}

func (f *fakePurchaseRepository) HasAccessGrant(_ context.Context, userID, gameID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.grants[userID+"/"+gameID]
	return ok, nil
}

func (f *fakePurchaseRepository) GetUserAccessGrants(_ context.Context, userID string) ([]*entities.GameAccess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entities.GameAccess
	for _, grant := range f.grants {
		if grant.UserID.String() == userID {
			copied := *grant
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeGameRepository struct {
	games map[string]*entities.Game
}

func newFakeGameRepository(games ...*entities.Game) *fakeGameRepository {
	f := &fakeGameRepository{games: make(map[string]*entities.Game)}
	for _, g := range games {
		f.games[g.ID.String()] = g
	}
	return f
}

func (f *fakeGameRepository) CreateGame(_ context.Context, game *entities.Game) error {
	f.games[game.ID.String()] = game
	return nil
}

func (f *fakeGameRepository) GetGameByID(_ context.Context, id string) (*entities.Game, error) {
	game, ok := f.games[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return game, nil
}

func (f *fakeGameRepository) UpdateGame(_ context.Context, game *entities.Game) error {
	f.games[game.ID.String()] = game
	return nil
}

func (f *fakeGameRepository) DeleteGame(_ context.Context, id string) error {
	delete(f.games, id)
	return nil
}

func (f *fakeGameRepository) GetGames(_ context.Context) ([]*entities.Game, error) {
	var result []*entities.Game
	for _, g := range f.games {
		result = append(result, g)
	}
	return result, nil
}

func (f *fakeGameRepository) GetActiveGames(_ context.Context) ([]*entities.Game, error) {
	var result []*entities.Game
	for _, g := range f.games {
		if g.Status == entities.GameStatusActive {
			result = append(result, g)
		}
	}
	return result, nil
}

func (f *fakeGameRepository) DeleteArchivedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, g := range f.games {
		if g.Status == entities.GameStatusArchived && g.ArchivedAt != nil && g.ArchivedAt.Before(cutoff) {
			delete(f.games, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeGameRepository) CountGames(_ context.Context) (int64, error) {
	return int64(len(f.games)), nil
}

func (f *fakeGameRepository) CountGamesByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, g := range f.games {
		if g.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeGameRepository) CountOrdersByGame(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

type fakeUserRepository struct {
	users map[string]*entities.User
}

func newFakeUserRepository(users ...*entities.User) *fakeUserRepository {
	f := &fakeUserRepository{users: make(map[string]*entities.User)}
	for _, u := range users {
		f.users[u.ID.String()] = u
	}
	return f
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakePaystackService struct {
	mu          sync.Mutex
	initCalls   []domain.PaystackInitRequest
	verifyCalls int

	initResponse   *domain.PaystackInitResponse
	initErr        error
	verifyResponse *domain.PaystackVerifyResponse
	verifyErr      error
}

func (f *fakePaystackService) InitializeTransaction(_ context.Context, req domain.PaystackInitRequest) (*domain.PaystackInitResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls = append(f.initCalls, req)
	if f.initErr != nil {
		return nil, f.initErr
	}
	return f.initResponse, nil
}

func (f *fakePaystackService) VerifyTransaction(_ context.Context, _ string) (*domain.PaystackVerifyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyResponse, nil
}

func (f *fakePaystackService) ValidateSignature(_ []byte, _ string) bool {
	return true
}

func newTestGame(price float64) *entities.Game {
	return &entities.Game{
		ID:          uuid.New(),
		GameName:    "Weekend Special",
		GameType:    "vip ticket",
		BookingCode: "BK-7781",
		TotalOdds:   12.5,
		Price:       price,
		Matches: entities.MatchList{
			{HomeTeam: "Hearts of Oak", AwayTeam: "Asante Kotoko", Odds: 1.8, Status: entities.MatchStatusPending},
			{HomeTeam: "Medeama", AwayTeam: "Aduana Stars", Odds: 2.1, Status: entities.MatchStatusPending},
		},
		Status: entities.GameStatusActive,
	}
}

func newTestUser() *entities.User {
	return &entities.User{
		ID:       uuid.New(),
		FullName: "Ama Mensah",
		Email:    "ama@example.com",
		Role:     domain.RoleUser,
	}
}

func TestInitiatePurchase(t *testing.T) {
	testGame := newTestGame(10)
	testUser := newTestUser()
	gateway := &fakePaystackService{
		initResponse: &domain.PaystackInitResponse{
			AuthorizationURL: "https://checkout.example.com/abc",
			Reference:        "ref-001",
		},
	}

	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(testGame),
		newFakeUserRepository(testUser),
		gateway,
	)

	resp, err := service.InitiatePurchase(context.Background(), testUser.ID.String(), domain.InitiatePurchaseRequest{
		GameID: testGame.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/abc", resp.AuthorizationURL)
	assert.Equal(t, "ref-001", resp.Reference)

	require.Len(t, gateway.initCalls, 1)
	call := gateway.initCalls[0]
	assert.Equal(t, testUser.Email, call.Email)
	assert.Equal(t, 10.0, call.Amount, "amount must come from the stored price")
	assert.Equal(t, testUser.ID.String(), call.Metadata[domain.MetadataUserID])
	assert.Equal(t, testGame.ID.String(), call.Metadata[domain.MetadataGameID])
}

func TestInitiatePurchaseGameNotFound(t *testing.T) {
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	_, err := service.InitiatePurchase(context.Background(), testUser.ID.String(), domain.InitiatePurchaseRequest{
		GameID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestInitiatePurchaseFreeGame(t *testing.T) {
	freeGame := newTestGame(0)
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(freeGame),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	_, err := service.InitiatePurchase(context.Background(), testUser.ID.String(), domain.InitiatePurchaseRequest{
		GameID: freeGame.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrGameNotPurchasable)
}

func TestInitiatePurchaseGatewayDown(t *testing.T) {
	testGame := newTestGame(10)
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(testGame),
		newFakeUserRepository(testUser),
		&fakePaystackService{initErr: domain.ErrGatewayUnavailable},
	)

	_, err := service.InitiatePurchase(context.Background(), testUser.ID.String(), domain.InitiatePurchaseRequest{
		GameID: testGame.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func successfulVerify(userID, gameID string, amount float64) *domain.PaystackVerifyResponse {
	return &domain.PaystackVerifyResponse{
		Success: true,
		Amount:  amount,
		Metadata: map[string]string{
			domain.MetadataUserID: userID,
			domain.MetadataGameID: gameID,
		},
	}
}

func TestVerifyPurchaseRecordsOnce(t *testing.T) {
	testGame := newTestGame(10)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 10),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	first, err := service.VerifyPurchase(context.Background(), "ref-100")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, first.Status)
	assert.Equal(t, testGame.BookingCode, first.BookingCode)
	assert.Equal(t, testGame.GameName, first.GameName)
	assert.Equal(t, 10.0, first.Amount)

	// Every later call is a NoOp that returns the stored record and never
	// reaches the gateway again.
	for i := 0; i < 5; i++ {
		again, err := service.VerifyPurchase(context.Background(), "ref-100")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
	assert.Equal(t, 1, gateway.verifyCalls)

	count, err := repo.CountOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestVerifyPurchaseConcurrentDuplicates(t *testing.T) {
	testGame := newTestGame(25)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 25),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	const callers = 8
	results := make([]*domain.OrderResponse, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.VerifyPurchase(context.Background(), "ref-race")
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID, "all callers must see the winning record")
	}

	count, err := repo.CountOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestVerifyPurchaseFailedPayment(t *testing.T) {
	testGame := newTestGame(10)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: &domain.PaystackVerifyResponse{Success: false},
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-failed")
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)

	count, _ := repo.CountOrders(context.Background())
	assert.Equal(t, int64(0), count)
}

func TestVerifyPurchaseMissingMetadata(t *testing.T) {
	testGame := newTestGame(10)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: &domain.PaystackVerifyResponse{Success: true, Amount: 10},
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-nometa")
	assert.ErrorIs(t, err, domain.ErrMissingMetadata)

	count, _ := repo.CountOrders(context.Background())
	assert.Equal(t, int64(0), count, "no record may be created without metadata")
}

func TestHandleWebhookEventIgnoresOtherEvents(t *testing.T) {
	gateway := &fakePaystackService{}
	service := NewPurchaseService(newFakePurchaseRepository(), newFakeGameRepository(), newFakeUserRepository(), gateway)

	event := domain.PaystackWebhookEvent{Event: "charge.dispute.create"}
	require.NoError(t, service.HandleWebhookEvent(context.Background(), event))
	assert.Equal(t, 0, gateway.verifyCalls)
}

func TestHasAccessFreeGame(t *testing.T) {
	freeGame := newTestGame(0)
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(freeGame),
		newFakeUserRepository(),
		&fakePaystackService{},
	)

	access, err := service.HasAccess(context.Background(), uuid.NewString(), freeGame.ID.String())
	require.NoError(t, err)
	assert.True(t, access, "free games are open to everyone")
}

func TestHasAccessRequiresOrder(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	access, err := service.HasAccess(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.False(t, access)

	_, err = service.VerifyPurchase(context.Background(), "ref-access")
	require.NoError(t, err)

	access, err = service.HasAccess(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.True(t, access)
}

func TestGetGameDetailHidesSecretWithoutAccess(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(testGame),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	detail, err := service.GetGameDetail(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.False(t, detail.HasAccess)
	assert.Empty(t, detail.BookingCode)
	assert.Empty(t, detail.Matches)
	assert.Equal(t, 2, detail.MatchCount)
	assert.Equal(t, "VIP", detail.DisplayType)
}

func TestGetGameDetailRevealsSecretWithAccess(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(testGame), newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-detail")
	require.NoError(t, err)

	detail, err := service.GetGameDetail(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.True(t, detail.HasAccess)
	assert.Equal(t, testGame.BookingCode, detail.BookingCode)
	assert.Len(t, detail.Matches, 2)
}

func TestPurchaseHistorySurvivesGameDeletion(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gameRepo := newFakeGameRepository(testGame)
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, gameRepo, newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-history")
	require.NoError(t, err)

	require.NoError(t, gameRepo.DeleteGame(context.Background(), testGame.ID.String()))

	orders, count, err := service.GetPurchaseHistory(context.Background(), testUser.ID.String(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, orders, 1)
	assert.Equal(t, testGame.GameName, orders[0].GameName)
	assert.Equal(t, testGame.BookingCode, orders[0].BookingCode)
}

func TestGrantAccessOpensPaidGame(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(testGame),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	access, err := service.HasAccess(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.False(t, access)

	require.NoError(t, service.GrantAccess(context.Background(), domain.GrantAccessRequest{
		UserID: testUser.ID.String(),
		GameID: testGame.ID.String(),
	}))

	access, err = service.HasAccess(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.True(t, access, "a grant must open the game without a payment")

	detail, err := service.GetGameDetail(context.Background(), testUser.ID.String(), testGame.ID.String())
	require.NoError(t, err)
	assert.True(t, detail.HasAccess)
	assert.Equal(t, testGame.BookingCode, detail.BookingCode)
}

func TestGrantAccessTwiceConflicts(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(testGame),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	req := domain.GrantAccessRequest{UserID: testUser.ID.String(), GameID: testGame.ID.String()}
	require.NoError(t, service.GrantAccess(context.Background(), req))
	assert.ErrorIs(t, service.GrantAccess(context.Background(), req), domain.ErrAccessAlreadyGranted)
}

func TestGrantAccessGameNotFound(t *testing.T) {
	testUser := newTestUser()
	service := NewPurchaseService(
		newFakePurchaseRepository(),
		newFakeGameRepository(),
		newFakeUserRepository(testUser),
		&fakePaystackService{},
	)

	err := service.GrantAccess(context.Background(), domain.GrantAccessRequest{
		UserID: testUser.ID.String(),
		GameID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestGetPurchasedGamesMergesOrdersAndGrants(t *testing.T) {
	paidGame := newTestGame(15)
	grantedGame := newTestGame(30)
	grantedGame.GameName = "Recovery Slip"
	grantedGame.GameType = "recovery"
	grantedGame.BookingCode = "BK-9904"
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), paidGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(paidGame, grantedGame), newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-purchased")
	require.NoError(t, err)
	require.NoError(t, service.GrantAccess(context.Background(), domain.GrantAccessRequest{
		UserID: testUser.ID.String(),
		GameID: grantedGame.ID.String(),
	}))

	games, err := service.GetPurchasedGames(context.Background(), testUser.ID.String())
	require.NoError(t, err)
	require.Len(t, games, 2)

	byType := make(map[string]*domain.PurchasedGameResponse)
	for _, g := range games {
		byType[g.AccessType] = g
	}
	require.Contains(t, byType, entities.AccessTypePurchase)
	require.Contains(t, byType, entities.AccessTypeRecovery)
	assert.Equal(t, paidGame.BookingCode, byType[entities.AccessTypePurchase].BookingCode)
	assert.Equal(t, "BK-9904", byType[entities.AccessTypeRecovery].BookingCode)
	assert.Len(t, byType[entities.AccessTypePurchase].Matches, 2, "live games carry their matches")
}

func TestGetRecoveryGamesOnlyGrants(t *testing.T) {
	paidGame := newTestGame(15)
	grantedGame := newTestGame(30)
	grantedGame.BookingCode = "BK-9904"
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), paidGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, newFakeGameRepository(paidGame, grantedGame), newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-recovery")
	require.NoError(t, err)
	require.NoError(t, service.GrantAccess(context.Background(), domain.GrantAccessRequest{
		UserID: testUser.ID.String(),
		GameID: grantedGame.ID.String(),
	}))

	games, err := service.GetRecoveryGames(context.Background(), testUser.ID.String())
	require.NoError(t, err)
	require.Len(t, games, 1, "paid orders never show up in the recovery tab")
	assert.Equal(t, entities.AccessTypeRecovery, games[0].AccessType)
	assert.Equal(t, "BK-9904", games[0].BookingCode)
}

func TestGetPurchasedGamesSurvivesGameDeletion(t *testing.T) {
	testGame := newTestGame(15)
	testUser := newTestUser()
	repo := newFakePurchaseRepository()
	gameRepo := newFakeGameRepository(testGame)
	gateway := &fakePaystackService{
		verifyResponse: successfulVerify(testUser.ID.String(), testGame.ID.String(), 15),
	}

	service := NewPurchaseService(repo, gameRepo, newFakeUserRepository(testUser), gateway)

	_, err := service.VerifyPurchase(context.Background(), "ref-gone")
	require.NoError(t, err)
	require.NoError(t, gameRepo.DeleteGame(context.Background(), testGame.ID.String()))

	games, err := service.GetPurchasedGames(context.Background(), testUser.ID.String())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, testGame.BookingCode, games[0].BookingCode)
	assert.Empty(t, games[0].Matches)
}
