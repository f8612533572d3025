package paystack

import (
	"SurePicks-Backend/domain"
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.paystack.co"

type (
	// PaystackService wraps the two provider operations the purchase flow
	// needs: initialize and verify. Amounts cross this boundary in GHS and
	// are converted to pesewas (minor units) exactly once, here.
	PaystackService interface {
		InitializeTransaction(ctx context.Context, req domain.PaystackInitRequest) (*domain.PaystackInitResponse, error)
		VerifyTransaction(ctx context.Context, reference string) (*domain.PaystackVerifyResponse, error)
		ValidateSignature(body []byte, signature string) bool
	}

	paystackService struct {
		secretKey string
		baseURL   string
		client    *http.Client
	}
)

func NewPaystackService(secretKey, baseURL string) PaystackService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &paystackService{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type initPayload struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Metadata    map[string]string `json:"metadata"`
	CallbackURL string            `json:"callback_url,omitempty"`
}

type initEnvelope struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyEnvelope struct {
	Status bool `json:"status"`
	Data   struct {
		Status   string            `json:"status"`
		Amount   int64             `json:"amount"`
		Metadata map[string]string `json:"metadata"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

func (s *paystackService) InitializeTransaction(ctx context.Context, req domain.PaystackInitRequest) (*domain.PaystackInitResponse, error) {
	payload := initPayload{
		Email:       req.Email,
		Amount:      toMinorUnits(req.Amount),
		Metadata:    req.Metadata,
		CallbackURL: req.CallbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/transaction/initialize",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrGatewayUnavailable
	}

	var envelope initEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	if !envelope.Status || envelope.Data.Reference == "" {
		return nil, domain.ErrGatewayUnavailable
	}

	return &domain.PaystackInitResponse{
		AuthorizationURL: envelope.Data.AuthorizationURL,
		Reference:        envelope.Data.Reference,
	}, nil
}

func (s *paystackService) VerifyTransaction(ctx context.Context, reference string) (*domain.PaystackVerifyResponse, error) {
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/transaction/verify/%s", s.baseURL, reference),
		nil,
	)
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrTransactionNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrGatewayUnavailable
	}

	var envelope verifyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, domain.ErrGatewayUnavailable
	}
	if !envelope.Status {
		return nil, domain.ErrTransactionNotFound
	}

	return &domain.PaystackVerifyResponse{
		Success:       envelope.Data.Status == "success",
		Amount:        fromMinorUnits(envelope.Data.Amount),
		Metadata:      envelope.Data.Metadata,
		CustomerEmail: envelope.Data.Customer.Email,
	}, nil
}

// ValidateSignature recomputes the HMAC-SHA512 the provider sends in
// x-paystack-signature over the raw body and compares in constant time.
func (s *paystackService) ValidateSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
