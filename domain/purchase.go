package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessInitiatePurchase = "purchase initiated successfully"
	MessageSuccessVerifyPurchase   = "purchase verified successfully"
	MessageSuccessGetPurchases     = "purchase history retrieved successfully"
	MessageSuccessGetPurchased     = "purchased predictions retrieved successfully"
	MessageSuccessGetRecovery      = "recovery predictions retrieved successfully"
	MessageSuccessGrantAccess      = "access granted successfully"
	MessageSuccessWebhook          = "webhook processed"

	MessageFailedInitiatePurchase = "failed to initiate purchase"
	MessageFailedVerifyPurchase   = "failed to verify purchase"
	MessageFailedGetPurchases     = "failed to retrieve purchase history"
	MessageFailedGetPurchased     = "failed to retrieve purchased predictions"
	MessageFailedGetRecovery      = "failed to retrieve recovery predictions"
	MessageFailedGrantAccess      = "failed to grant access"
	MessageFailedWebhookSignature = "invalid webhook signature"

	ErrGameNotPurchasable   = errors.New("game is not purchasable")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrVerificationFailed   = errors.New("payment verification failed")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrMissingMetadata      = errors.New("transaction metadata missing")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrAccessAlreadyGranted = errors.New("access already granted")
)

// Reason codes the callback redirect appends to the purchases page URL.
const (
	CallbackReasonNoReference = "NoReference"
	CallbackReasonFailed      = "PaymentFailed"
	CallbackReasonBadMetadata = "BadMetadata"
	CallbackReasonServerError = "ServerError"
)

type (
	InitiatePurchaseRequest struct {
		GameID string `json:"game_id" validate:"required,uuid"`
	}

	InitiatePurchaseResponse struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}

	VerifyPurchaseRequest struct {
		Reference string `json:"reference" validate:"required"`
	}

	GrantAccessRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		GameID string `json:"game_id" validate:"required,uuid"`
	}

	// PurchasedGameResponse is one entitlement the user holds, whether it
	// came from a payment or an admin grant. This is the only listing that
	// ships booking codes, so it is always behind authentication.
	PurchasedGameResponse struct {
		GameID      string          `json:"game_id"`
		GameName    string          `json:"game_name"`
		DisplayType string          `json:"display_type"`
		BookingCode string          `json:"booking_code"`
		TotalOdds   float64         `json:"total_odds,omitempty"`
		Matches     []MatchResponse `json:"matches,omitempty"`
		GameDate    string          `json:"game_date,omitempty"`
		AccessType  string          `json:"access_type"`
		GrantedAt   time.Time       `json:"granted_at"`
	}

	OrderResponse struct {
		ID          string    `json:"id"`
		Amount      float64   `json:"amount"`
		Currency    string    `json:"currency"`
		Status      string    `json:"status"`
		ProviderRef string    `json:"provider_ref"`
		GameID      string    `json:"game_id"`
		GameName    string    `json:"game_name"`
		GameType    string    `json:"game_type"`
		BookingCode string    `json:"booking_code"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
