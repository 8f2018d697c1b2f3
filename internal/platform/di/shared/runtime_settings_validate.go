// internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/rpc"
)

// Validate performs hard validation for RuntimeSettings.
//
// Policy:
//   - This should be stricter than Normalize.
//   - It should fail fast for values that would cause undefined behavior,
//     while allowing optional features to remain disabled when settings are empty.
func (s RuntimeSettings) Validate() error {
	if strings.TrimSpace(s.Cluster.RPC) == "" {
		return fmt.Errorf("shared.runtime_settings: cluster RPC endpoint is empty")
	}

	switch s.Commitment {
	case rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("shared.runtime_settings: commitment must be confirmed or finalized (got %q)", s.Commitment)
	}

	if s.PollInterval <= 0 || s.ConfirmTimeout <= 0 {
		return fmt.Errorf("shared.runtime_settings: poll interval and confirm timeout must be positive")
	}
	if s.PollInterval >= s.ConfirmTimeout {
		return fmt.Errorf("shared.runtime_settings: poll interval %s must be shorter than confirm timeout %s", s.PollInterval, s.ConfirmTimeout)
	}

	if err := s.Asset.Validate(); err != nil {
		return fmt.Errorf("shared.runtime_settings: %w", err)
	}

	// An empty TOKEN_URI asks for an upload, which needs somewhere to put it.
	if strings.TrimSpace(s.Asset.URI) == "" && s.MetadataBucket == "" && s.ArweaveBaseURL == "" {
		return fmt.Errorf("shared.runtime_settings: TOKEN_URI is empty and neither METADATA_BUCKET nor ARWEAVE_BASE_URL is set")
	}

	// GCS bucket names cannot contain spaces.
	if strings.ContainsAny(s.MetadataBucket, " \t\r\n") {
		return fmt.Errorf("shared.runtime_settings: MetadataBucket contains whitespace (got %q)", s.MetadataBucket)
	}
	if u := s.ArweaveBaseURL; u != "" && !(strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")) {
		return fmt.Errorf("shared.runtime_settings: ArweaveBaseURL must start with http:// or https:// (got %q)", u)
	}

	return nil
}
