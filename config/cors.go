package config

type Cors struct {
	// 完全比對的來源
	AllowOrigins []string `mapstructure:"ALLOW_ORIGINS" json:"allowOrigins" yaml:"allowOrigins"`
	// 以 host 後綴比對的來源，例如 ".vercel.app"
	AllowOriginSuffixes []string `mapstructure:"ALLOW_ORIGIN_SUFFIXES" json:"allowOriginSuffixes" yaml:"allowOriginSuffixes"`
}
