package model

// MixStatusType enumerates the mix lifecycle states.
type MixStatusType string

const (
	MixPendingDeposit MixStatusType = "pending_deposit"
	MixDeposited      MixStatusType = "deposited"
	MixMixing         MixStatusType = "mixing"
	MixCompleted      MixStatusType = "completed"
	MixFailed         MixStatusType = "failed"
	MixExpired        MixStatusType = "expired"
)

// Terminal reports whether the state is final. Once terminal, all fields of
// the job are frozen.
func (s MixStatusType) Terminal() bool {
	switch s {
	case MixCompleted, MixFailed, MixExpired:
		return true
	}
	return false
}

// MixParams describes a requested mix.
type MixParams struct {
	// Token is a registry symbol ("SOL", "USDC", "USDT").
	Token string `json:"token"`
	// Amount in display form.
	Amount string `json:"amount"`
	// Recipient is the payout public key.
	Recipient string `json:"recipient"`
	// DelayMinutes postpones the payout; zero means instant.
	DelayMinutes int `json:"delayMinutes,omitempty"`
}

// MixJob is the server-issued handle for one mix. Amounts are base-unit
// integer strings.
type MixJob struct {
	MixID            string        `json:"mixId"`
	Token            string        `json:"token"`
	Status           MixStatusType `json:"status"`
	DepositAddress   string        `json:"depositAddress"`
	DepositAmount    string        `json:"depositAmount"`
	Fee              string        `json:"fee"`
	OutputAmount     string        `json:"outputAmount"`
	Recipient        string        `json:"recipient"`
	ExpiresAt        string        `json:"expiresAt"`
	PaymentSignature string        `json:"paymentSignature,omitempty"`
}

// MixStatus is one server-reported observation of a mix. Transitions are
// server-driven; the SDK never infers them locally.
type MixStatus struct {
	MixID           string        `json:"mixId"`
	Status          MixStatusType `json:"status"`
	Progress        int           `json:"progress"` // 0..100
	CurrentHop      int           `json:"currentHop"`
	TotalHops       int           `json:"totalHops"`
	CompletedAt     string        `json:"completedAt,omitempty"`
	OutputSignature string        `json:"outputSignature,omitempty"`
	Error           string        `json:"error,omitempty"`
}
