package handlers

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/internal/api/presenters"
	"SurePicks-Backend/internal/utils"
	"SurePicks-Backend/pkg/game"
	"SurePicks-Backend/pkg/paystack"
	"SurePicks-Backend/pkg/purchase"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PurchaseHandler interface {
		InitiatePurchase(c *fiber.Ctx) error
		VerifyPurchase(c *fiber.Ctx) error
		PurchaseCallback(c *fiber.Ctx) error
		PaystackWebhook(c *fiber.Ctx) error
		GetPurchaseHistory(c *fiber.Ctx) error
		GetPurchasedGames(c *fiber.Ctx) error
		GetRecoveryGames(c *fiber.Ctx) error
		GrantAccess(c *fiber.Ctx) error
		GetGameDetail(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	purchaseHandler struct {
		purchaseService purchase.PurchaseService
		gameService     game.GameService
		paystackService paystack.PaystackService
		validator       *validator.Validate
	}
)

func NewPurchaseHandler(
	purchaseService purchase.PurchaseService,
	gameService game.GameService,
	paystackService paystack.PaystackService,
	validator *validator.Validate,
) PurchaseHandler {
	return &purchaseHandler{
		purchaseService: purchaseService,
		gameService:     gameService,
		paystackService: paystackService,
		validator:       validator,
	}
}

func (h *purchaseHandler) InitiatePurchase(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InitiatePurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePurchase, err)
	}

	resp, err := h.purchaseService.InitiatePurchase(c.Context(), userID, *req)
	if err != nil {
		code := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrGameNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrGatewayUnavailable):
			code = fiber.StatusBadGateway
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedInitiatePurchase, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessInitiatePurchase)
}

// VerifyPurchase is the client poll channel; it funnels into the same
// idempotent verification the callback and webhook use.
func (h *purchaseHandler) VerifyPurchase(c *fiber.Ctx) error {
	req := new(domain.VerifyPurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyPurchase, err)
	}

	resp, err := h.purchaseService.VerifyPurchase(c.Context(), req.Reference)
	if err != nil {
		code := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrGatewayUnavailable):
			code = fiber.StatusBadGateway
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedVerifyPurchase, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessVerifyPurchase)
}

// PurchaseCallback handles the provider redirect. The redirect itself is
// never proof of payment; the reference is re-verified like any other
// channel, then the user lands back on their purchases page with a
// machine-readable reason code.
func (h *purchaseHandler) PurchaseCallback(c *fiber.Ctx) error {
	purchasesURL := utils.GetConfig("APP_URL") + "/user-dashboard/purchases"

	reference := c.Query("reference")
	if reference == "" {
		return c.Redirect(purchasesURL + "?error=" + domain.CallbackReasonNoReference)
	}

	if _, err := h.purchaseService.VerifyPurchase(c.Context(), reference); err != nil {
		reason := domain.CallbackReasonServerError
		switch {
		case errors.Is(err, domain.ErrVerificationFailed),
			errors.Is(err, domain.ErrTransactionNotFound):
			reason = domain.CallbackReasonFailed
		case errors.Is(err, domain.ErrMissingMetadata):
			reason = domain.CallbackReasonBadMetadata
		}
		return c.Redirect(purchasesURL + "?error=" + reason)
	}

	return c.Redirect(purchasesURL + "?success=1")
}

// PaystackWebhook recomputes the HMAC over the raw body before trusting
// anything in it. A bad signature is a terminal rejection so the provider
// does not retry a permanently-invalid event.
func (h *purchaseHandler) PaystackWebhook(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get(domain.PaystackSignatureHeader)

	if !h.paystackService.ValidateSignature(body, signature) {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedWebhookSignature, domain.ErrInvalidSignature)
	}

	var event domain.PaystackWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.purchaseService.HandleWebhookEvent(c.Context(), event); err != nil {
		// Only a gateway outage is worth a provider retry. Everything else
		// (failed charge, missing metadata) is terminal for this event, so
		// it is acknowledged to stop the redelivery loop.
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedVerifyPurchase, err)
		}
		log.Printf("webhook event %s not recorded: %v", event.Event, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWebhook)
}

func (h *purchaseHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.purchaseService.GetPurchaseHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchases, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"purchases": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetPurchases)
}

// GetPurchasedGames is the only listing that ships booking codes; the
// route sits behind authentication.
func (h *purchaseHandler) GetPurchasedGames(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	games, err := h.purchaseService.GetPurchasedGames(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPurchased, err)
	}

	return presenters.SuccessResponse(c, games, fiber.StatusOK, domain.MessageSuccessGetPurchased)
}

func (h *purchaseHandler) GetRecoveryGames(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	games, err := h.purchaseService.GetRecoveryGames(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecovery, err)
	}

	return presenters.SuccessResponse(c, games, fiber.StatusOK, domain.MessageSuccessGetRecovery)
}

func (h *purchaseHandler) GrantAccess(c *fiber.Ctx) error {
	req := new(domain.GrantAccessRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGrantAccess, err)
	}

	if err := h.purchaseService.GrantAccess(c.Context(), *req); err != nil {
		code := fiber.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrGameNotFound), errors.Is(err, domain.ErrUserNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, domain.ErrAccessAlreadyGranted):
			code = fiber.StatusConflict
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedGrantAccess, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessGrantAccess)
}

func (h *purchaseHandler) GetGameDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	gameID := c.Params("id")

	resp, err := h.purchaseService.GetGameDetail(c.Context(), userID, gameID)
	if err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrGameNotFound) {
			code = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedGetGameDetail, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGetGameDetail)
}

// GetDashboard runs the lazy archival sweep before reading the aggregates
// so stale archived games never show up in the counts.
func (h *purchaseHandler) GetDashboard(c *fiber.Ctx) error {
	swept, err := h.gameService.SweepArchived(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDashboard, err)
	}

	stats, err := h.purchaseService.GetDashboardStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetDashboard, err)
	}
	stats.SweptGames = swept

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
