package model

// BatchAuditLog 批次建立結果的稽核紀錄，不含任何憑證
type BatchAuditLog struct {
	ShopID         string   `json:"shop_id"`
	ShopOwnerID    string   `json:"shop_owner_id"`
	CountRequested int      `json:"count_requested"`
	CountCreated   int      `json:"count_created"`
	CountFailed    int      `json:"count_failed"`
	CountSkipped   int      `json:"count_skipped"`
	StartNumber    int      `json:"start_number"`
	LastNumber     int      `json:"last_number"`
	Exhausted      bool     `json:"exhausted"`
	Emails         []string `json:"emails,omitempty"`
	Version        string   `json:"version,omitempty"`
	LoggedAt       string   `json:"logged_at"`
}
