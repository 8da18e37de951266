package config

type Configuration struct {
	App          App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log          Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	Redis        Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	MongoDB      MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Telemetry    TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd      Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Cors         Cors            `mapstructure:"CORS" json:"cors" yaml:"cors"`
	Provisioning Provisioning    `mapstructure:"PROVISIONING" json:"provisioning" yaml:"provisioning"`
	RateLimit    RateLimit       `mapstructure:"RATE_LIMIT" json:"rate_limit" yaml:"rate_limit"`
	Reconcile    Reconcile       `mapstructure:"RECONCILE" json:"reconcile" yaml:"reconcile"`
}
