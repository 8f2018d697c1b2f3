// internal/infra/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for the launch this tool was written for.
const (
	DefaultNetwork        = "mainnet"
	DefaultCommitment     = "confirmed"
	DefaultConfirmTimeout = 90 * time.Second
	DefaultPollInterval   = 2 * time.Second

	DefaultTokenName     = "Ghibli Pepe"
	DefaultTokenSymbol   = "GHIBLIPEPE"
	DefaultTokenURI      = "https://raw.githubusercontent.com/metadataee/metadata/refs/heads/main/metadata.json"
	DefaultTokenDecimals = 9
	DefaultTokenSupply   = 1_000_000_000

	DefaultMetadataPrefix = "metadata"
	DefaultLogLevel       = "info"
)

// Config holds every env-resolved setting of a launch run.
// The usecase receives values from here; it never reads the environment itself.
type Config struct {
	// Network
	Network        string // cluster name (mainnet/devnet/testnet/localnet) or RPC URL
	Commitment     string // confirmed | finalized
	ConfirmTimeout time.Duration
	PollInterval   time.Duration

	// Credentials. PrivateKey is base58 or a JSON byte array; MintKeySecret is a
	// Secret Manager version name and wins when set.
	PrivateKey    string
	MintKeySecret string

	// Asset
	TokenName            string
	TokenSymbol          string
	TokenURI             string
	TokenDecimals        uint8
	TokenSupply          uint64
	SellerFeeBasisPoints uint16
	TokenMutable         bool
	TokenDescription     string
	TokenImage           string

	// Off-chain metadata hosting (used only when TokenURI is empty)
	MetadataBucket string
	MetadataPrefix string
	ArweaveBaseURL string
	ArweaveAPIKey  string

	GCPCreds string

	// Launch report mail (SendGrid); off unless key, sender and recipients are set
	SendGridAPIKey string
	NotifyFrom     string
	NotifyFromName string
	NotifyTo       string // comma separated

	LogLevel       string
	LogDevelopment bool
}

// Load reads the environment and returns a normalized Config.
// Malformed numeric/bool/duration values are errors, absent ones take defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Network:    getenvDefault("SOLANA_NETWORK", DefaultNetwork),
		Commitment: strings.ToLower(getenvDefault("SOLANA_COMMITMENT", DefaultCommitment)),

		PrivateKey:    firstNonEmpty(os.Getenv("SOLANA_PRIVATE_KEY"), os.Getenv("privatekey")),
		MintKeySecret: getenvTrim("SOLANA_MINT_KEY_SECRET"),

		TokenName:        getenvDefault("TOKEN_NAME", DefaultTokenName),
		TokenSymbol:      getenvDefault("TOKEN_SYMBOL", DefaultTokenSymbol),
		TokenURI:         getenvURI(),
		TokenDescription: getenvTrim("TOKEN_DESCRIPTION"),
		TokenImage:       getenvTrim("TOKEN_IMAGE"),

		MetadataBucket: getenvTrim("METADATA_BUCKET"),
		MetadataPrefix: strings.Trim(getenvDefault("METADATA_PREFIX", DefaultMetadataPrefix), "/"),
		ArweaveBaseURL: strings.TrimRight(getenvTrim("ARWEAVE_BASE_URL"), "/"),
		ArweaveAPIKey:  getenvTrim("ARWEAVE_API_KEY"),

		GCPCreds: getenvTrim("GOOGLE_APPLICATION_CREDENTIALS"),

		SendGridAPIKey: getenvTrim("SENDGRID_API_KEY"),
		NotifyFrom:     firstNonEmpty(os.Getenv("LAUNCH_NOTIFY_FROM"), os.Getenv("SENDGRID_FROM")),
		NotifyFromName: getenvTrim("LAUNCH_NOTIFY_FROM_NAME"),
		NotifyTo:       getenvTrim("LAUNCH_NOTIFY_TO"),

		LogLevel: strings.ToLower(getenvDefault("LOG_LEVEL", DefaultLogLevel)),
	}

	var err error
	if cfg.ConfirmTimeout, err = getenvDuration("SOLANA_CONFIRM_TIMEOUT", DefaultConfirmTimeout); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getenvDuration("SOLANA_POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}

	dec, err := getenvUint("TOKEN_DECIMALS", DefaultTokenDecimals, 8)
	if err != nil {
		return nil, err
	}
	cfg.TokenDecimals = uint8(dec)

	if cfg.TokenSupply, err = getenvUint("TOKEN_SUPPLY", DefaultTokenSupply, 64); err != nil {
		return nil, err
	}

	bps, err := getenvUint("TOKEN_SELLER_FEE_BPS", 0, 16)
	if err != nil {
		return nil, err
	}
	cfg.SellerFeeBasisPoints = uint16(bps)

	if cfg.TokenMutable, err = getenvBool("TOKEN_MUTABLE", false); err != nil {
		return nil, err
	}
	if cfg.LogDevelopment, err = getenvBool("LOG_DEVELOPMENT", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate performs hard validation. Optional features stay disabled when
// their settings are empty.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: nil")
	}
	if strings.TrimSpace(c.Network) == "" {
		return fmt.Errorf("config: SOLANA_NETWORK is empty")
	}
	switch c.Commitment {
	case "confirmed", "finalized":
	default:
		return fmt.Errorf("config: SOLANA_COMMITMENT must be confirmed or finalized (got %q)", c.Commitment)
	}
	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("config: SOLANA_CONFIRM_TIMEOUT must be positive (got %s)", c.ConfirmTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("config: SOLANA_POLL_INTERVAL must be positive (got %s)", c.PollInterval)
	}
	if c.TokenSupply == 0 {
		return fmt.Errorf("config: TOKEN_SUPPLY must be positive")
	}
	if strings.ContainsAny(c.MetadataBucket, " \t\r\n") {
		return fmt.Errorf("config: METADATA_BUCKET contains whitespace (got %q)", c.MetadataBucket)
	}
	if u := c.ArweaveBaseURL; u != "" && !(strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")) {
		return fmt.Errorf("config: ARWEAVE_BASE_URL must start with http:// or https:// (got %q)", u)
	}
	return nil
}

// HasMetadataHosting reports whether an uploader can produce TokenURI.
func (c *Config) HasMetadataHosting() bool {
	return c.MetadataBucket != "" || c.ArweaveBaseURL != ""
}

// HasLaunchNotify reports whether a launch report mail can be sent.
func (c *Config) HasLaunchNotify() bool {
	return c.SendGridAPIKey != "" && c.NotifyFrom != "" && c.NotifyTo != ""
}

// TOKEN_URI set to an empty string explicitly asks for an upload;
// unset keeps the default.
func getenvURI() string {
	v, ok := os.LookupEnv("TOKEN_URI")
	if !ok {
		return DefaultTokenURI
	}
	return strings.TrimSpace(v)
}

func getenvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvDefault(key, def string) string {
	if v := getenvTrim(key); v != "" {
		return v
	}
	return def
}

func getenvUint(key string, def uint64, bits int) (uint64, error) {
	v := getenvTrim(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := getenvTrim(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := getenvTrim(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
