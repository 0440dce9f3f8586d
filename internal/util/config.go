package util

import (
	"fmt"
	"time"
	
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins     []string `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL        string   `mapstructure:"DATABASE_URL"`
	HTTPServerAddress  string   `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisServerAddress string   `mapstructure:"REDIS_SERVER_ADDRESS"`
	
	SMTPHost        string `mapstructure:"SMTP_HOST"`
	SMTPPort        int    `mapstructure:"SMTP_PORT"`
	SMTPUsername    string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword    string `mapstructure:"SMTP_PASSWORD"`
	SMTPFromName    string `mapstructure:"SMTP_FROM_NAME"`
	SMTPFromAddress string `mapstructure:"SMTP_FROM_ADDRESS"`
	SMTPUseSSL      bool   `mapstructure:"SMTP_USE_SSL"`
	
	TextSMSBaseURL   string        `mapstructure:"TEXTSMS_BASE_URL"`
	TextSMSAPIKey    string        `mapstructure:"TEXTSMS_API_KEY"`
	TextSMSPartnerID string        `mapstructure:"TEXTSMS_PARTNER_ID"`
	TextSMSSenderID  string        `mapstructure:"TEXTSMS_SENDER_ID"`
	TextSMSTimeout   time.Duration `mapstructure:"TEXTSMS_TIMEOUT"`
	
	DiscordBotToken  string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID string `mapstructure:"DISCORD_CHANNEL_ID"`
	
	TemplateLookupPolicy    string        `mapstructure:"TEMPLATE_LOOKUP_POLICY"`
	TemplateCacheTTL        time.Duration `mapstructure:"TEMPLATE_CACHE_TTL"`
	SMSBalanceCheckInterval time.Duration `mapstructure:"SMS_BALANCE_CHECK_INTERVAL"`
	SMSBalanceThreshold     float64       `mapstructure:"SMS_BALANCE_THRESHOLD"`
}

// AlertsEnabled reports whether Discord alerting is configured.
func (c Config) AlertsEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordChannelID != ""
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	
	// Set defaults for non-sensitive config
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Notify Admin")
	v.SetDefault("SMTP_USE_SSL", false)
	v.SetDefault("TEXTSMS_BASE_URL", "https://api.textsms.co.ke/api/v3")
	v.SetDefault("TEXTSMS_SENDER_ID", "BIRDVIEW")
	v.SetDefault("TEXTSMS_TIMEOUT", "15s")
	v.SetDefault("TEMPLATE_LOOKUP_POLICY", "lenient")
	v.SetDefault("TEMPLATE_CACHE_TTL", "10m")
	v.SetDefault("SMS_BALANCE_CHECK_INTERVAL", "1h")
	v.SetDefault("SMS_BALANCE_THRESHOLD", 100)
	
	// Prefer environment variables over config file
	v.AutomaticEnv()
	
	// Load config file
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return
	}
	
	// Unmarshal config into struct
	err = v.UnmarshalExact(&config)
	if err != nil {
		return
	}
	
	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if config.SMTPFromAddress == "" {
		return fmt.Errorf("SMTP_FROM_ADDRESS is required")
	}
	if config.TextSMSAPIKey == "" {
		return fmt.Errorf("TEXTSMS_API_KEY is required")
	}
	if config.TextSMSPartnerID == "" {
		return fmt.Errorf("TEXTSMS_PARTNER_ID is required")
	}
	if config.TemplateLookupPolicy != "lenient" && config.TemplateLookupPolicy != "strict" {
		return fmt.Errorf("TEMPLATE_LOOKUP_POLICY must be lenient or strict, got %q", config.TemplateLookupPolicy)
	}
	
	return nil
}
