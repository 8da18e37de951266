package config

// Provisioning 批次建立員工帳號的參數
type Provisioning struct {
	// 單次請求可建立的上限
	MaxBatchSize int `mapstructure:"MAX_BATCH_SIZE" json:"maxBatchSize" yaml:"maxBatchSize"`
	// 單次請求最多嘗試的流水號數量（含碰撞略過），超過即視為搜尋空間耗盡
	MaxSuffixSearch    int      `mapstructure:"MAX_SUFFIX_SEARCH" json:"maxSuffixSearch" yaml:"maxSuffixSearch"`
	DefaultDomain      string   `mapstructure:"DEFAULT_DOMAIN" json:"defaultDomain" yaml:"defaultDomain"`
	DefaultRole        string   `mapstructure:"DEFAULT_ROLE" json:"defaultRole" yaml:"defaultRole"`
	DefaultPermissions []string `mapstructure:"DEFAULT_PERMISSIONS" json:"defaultPermissions" yaml:"defaultPermissions"`
}

type RateLimit struct {
	Enabled       bool  `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	Limit         int   `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
}

type Reconcile struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// robfig/cron 六欄位格式（含秒）
	Schedule     string `mapstructure:"SCHEDULE" json:"schedule" yaml:"schedule"`
	GraceSeconds int64  `mapstructure:"GRACE_SECONDS" json:"graceSeconds" yaml:"graceSeconds"`
}
