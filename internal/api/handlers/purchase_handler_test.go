package handlers

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/internal/utils"
	"SurePicks-Backend/pkg/paystack"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurchaseService struct {
	webhookEvents  []domain.PaystackWebhookEvent
	verifyRefs     []string
	verifyErr      error
	purchased      []*domain.PurchasedGameResponse
	purchasedUsers []string
}

func (f *fakePurchaseService) InitiatePurchase(_ context.Context, _ string, _ domain.InitiatePurchaseRequest) (*domain.InitiatePurchaseResponse, error) {
	return nil, nil
}

func (f *fakePurchaseService) VerifyPurchase(_ context.Context, reference string) (*domain.OrderResponse, error) {
	f.verifyRefs = append(f.verifyRefs, reference)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &domain.OrderResponse{ProviderRef: reference, Status: "Paid"}, nil
}

func (f *fakePurchaseService) HandleWebhookEvent(ctx context.Context, event domain.PaystackWebhookEvent) error {
	f.webhookEvents = append(f.webhookEvents, event)
	if event.Event != domain.PaystackEventChargeSuccess {
		return nil
	}
	_, err := f.VerifyPurchase(ctx, event.Data.Reference)
	return err
}

func (f *fakePurchaseService) HasAccess(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakePurchaseService) GrantAccess(_ context.Context, _ domain.GrantAccessRequest) error {
	return nil
}

func (f *fakePurchaseService) GetPurchasedGames(_ context.Context, userID string) ([]*domain.PurchasedGameResponse, error) {
	f.purchasedUsers = append(f.purchasedUsers, userID)
	return f.purchased, nil
}

func (f *fakePurchaseService) GetRecoveryGames(_ context.Context, _ string) ([]*domain.PurchasedGameResponse, error) {
	return nil, nil
}

func (f *fakePurchaseService) GetGameDetail(_ context.Context, _, _ string) (*domain.GameDetailResponse, error) {
	return nil, nil
}

func (f *fakePurchaseService) GetPurchaseHistory(_ context.Context, _ string, _, _ int) ([]*domain.OrderResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakePurchaseService) GetDashboardStats(_ context.Context) (*domain.DashboardResponse, error) {
	return &domain.DashboardResponse{}, nil
}

const webhookSecret = "sk_test_webhook"

func newWebhookApp(service *fakePurchaseService) *fiber.App {
	utils.InitValidator()
	handler := NewPurchaseHandler(service, nil, paystack.NewPaystackService(webhookSecret, ""), utils.Validate)

	app := fiber.New()
	app.Post("/webhook/paystack", handler.PaystackWebhook)
	app.Get("/purchase/callback", handler.PurchaseCallback)
	return app
}

func sign(body string) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaystackWebhookRejectsBadSignature(t *testing.T) {
	service := &fakePurchaseService{}
	app := newWebhookApp(service)

	body := `{"event":"charge.success","data":{"reference":"ref-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PaystackSignatureHeader, "deadbeef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, service.webhookEvents, "a forged event must never be processed")
	assert.Empty(t, service.verifyRefs)
}

func TestPaystackWebhookProcessesValidEvent(t *testing.T) {
	service := &fakePurchaseService{}
	app := newWebhookApp(service)

	body := `{"event":"charge.success","data":{"reference":"ref-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PaystackSignatureHeader, sign(body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, service.webhookEvents, 1)
	assert.Equal(t, []string{"ref-1"}, service.verifyRefs)
}

func TestPaystackWebhookIgnoresOtherEvents(t *testing.T) {
	service := &fakePurchaseService{}
	app := newWebhookApp(service)

	body := `{"event":"transfer.success","data":{"reference":"ref-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PaystackSignatureHeader, sign(body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, service.verifyRefs)
}

func TestGetPurchasedGamesListsEntitlements(t *testing.T) {
	service := &fakePurchaseService{
		purchased: []*domain.PurchasedGameResponse{
			{GameID: "g1", GameName: "Weekend Special", BookingCode: "BK-7781", AccessType: "purchase"},
			{GameID: "g2", GameName: "Recovery Slip", BookingCode: "BK-9904", AccessType: "recovery"},
		},
	}
	utils.InitValidator()
	handler := NewPurchaseHandler(service, nil, paystack.NewPaystackService(webhookSecret, ""), utils.Validate)

	app := fiber.New()
	app.Get("/api/v1/predictions/purchased", func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	}, handler.GetPurchasedGames)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/predictions/purchased", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"user-1"}, service.purchasedUsers)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "BK-7781")
	assert.Contains(t, string(body), "BK-9904")
}

func TestPaystackWebhookAcknowledgesFailedCharge(t *testing.T) {
	service := &fakePurchaseService{verifyErr: domain.ErrVerificationFailed}
	app := newWebhookApp(service)

	body := `{"event":"charge.success","data":{"reference":"ref-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PaystackSignatureHeader, sign(body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a permanently failed charge is acknowledged so the provider stops retrying")
	assert.Equal(t, []string{"ref-1"}, service.verifyRefs)
}

func TestPaystackWebhookAsksForRetryOnGatewayOutage(t *testing.T) {
	service := &fakePurchaseService{verifyErr: domain.ErrGatewayUnavailable}
	app := newWebhookApp(service)

	body := `{"event":"charge.success","data":{"reference":"ref-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(domain.PaystackSignatureHeader, sign(body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestPurchaseCallbackMissingReference(t *testing.T) {
	service := &fakePurchaseService{}
	app := newWebhookApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/purchase/callback", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error="+domain.CallbackReasonNoReference)
	assert.Empty(t, service.verifyRefs)
}

func TestPurchaseCallbackVerifiesReference(t *testing.T) {
	service := &fakePurchaseService{}
	app := newWebhookApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/purchase/callback?reference=ref-9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "success=1")
	assert.Equal(t, []string{"ref-9"}, service.verifyRefs, "the redirect alone is never trusted")
}

func TestPurchaseCallbackFailedPayment(t *testing.T) {
	service := &fakePurchaseService{verifyErr: domain.ErrVerificationFailed}
	app := newWebhookApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/purchase/callback?reference=ref-9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error="+domain.CallbackReasonFailed)
}
