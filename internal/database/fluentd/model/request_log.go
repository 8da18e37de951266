package model

type RequestLog struct {
	RequestID   string `json:"request_id"`
	Path        string `json:"path"`
	Method      string `json:"method"`
	ShopID      string `json:"shop_id,omitempty"`
	ShopOwnerID string `json:"shop_owner_id,omitempty"`
	Body        string `json:"body,omitempty"`
	ClientIP    string `json:"client_ip,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	Version     string `json:"version,omitempty"`
	RequestTS   string `json:"request_ts"`
	LoggedAt    string `json:"logged_at"`
}
