package models

// ChatRequest is an inbound chat message. UserID defaults to "default" when
// the client omits it.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatReply carries the chatbot answer.
type ChatReply struct {
	Reply string `json:"reply"`
}

// TransactionRequest is a purchase to be forwarded to the ledger service.
// The fields are caller-supplied and not validated against the catalog; the
// ledger service is authoritative.
type TransactionRequest struct {
	ProductID int     `json:"productId"`
	Price     float64 `json:"price"`
}

// SaleReceipt is produced by the ledger service and relayed verbatim. All
// fields are strings to match the ledger's wire format exactly.
type SaleReceipt struct {
	ProductID string `json:"productID"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
	TxID      string `json:"txID"`
}

// Product is a catalog row owned by the persistent store.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
	Price       float64 `json:"price"`
	ArtisanName string  `json:"artisan_name"`
}

// ActivityLogRequest records a user action. UserID defaults to "guest" when
// the client omits it.
type ActivityLogRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

// ActivityLogReply acknowledges a logged activity.
type ActivityLogReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body returned by the HTTP layer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
