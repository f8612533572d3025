package domain

// Metadata keys attached when initializing a transaction; verification
// fails closed when they are missing from the provider's response.
const (
	MetadataUserID = "user_id"
	MetadataGameID = "game_id"

	PaystackEventChargeSuccess = "charge.success"
	PaystackSignatureHeader    = "x-paystack-signature"

	CurrencyGHS = "GHS"
)

type (
	PaystackInitRequest struct {
		Email       string
		Amount      float64 // GHS, converted to pesewas inside the adapter
		Metadata    map[string]string
		CallbackURL string
	}

	PaystackInitResponse struct {
		AuthorizationURL string
		Reference        string
	}

	PaystackVerifyResponse struct {
		Success       bool
		Amount        float64 // GHS
		Metadata      map[string]string
		CustomerEmail string
	}

	PaystackWebhookEvent struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
)
