// internal/application/mint/metadata.go
package mint

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

// MetadataInput is the off-chain part of the token: what wallets and
// explorers show beside the on-chain name and symbol.
type MetadataInput struct {
	Asset       tokendom.AssetDescriptor
	Description string
	Image       string
	CreatedAt   time.Time
}

// BuildMetadataJSON builds the Metaplex fungible-token metadata document
// that TokenURI points at.
// - name/symbol come from the descriptor (required)
// - description may be empty
// - image, when set, is also listed in properties.files
func BuildMetadataJSON(in MetadataInput) ([]byte, error) {
	name := strings.TrimSpace(in.Asset.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", tokendom.ErrInvalidName)
	}
	symbol := strings.TrimSpace(in.Asset.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is empty", tokendom.ErrInvalidSymbol)
	}

	image := strings.TrimSpace(in.Image)

	files := make([]map[string]any, 0, 1)
	if image != "" {
		files = append(files, map[string]any{
			"uri":  image,
			"type": "image/*",
		})
	}

	properties := map[string]any{
		"category": "image",
		"files":    files,
	}
	if len(in.Asset.Creators) > 0 {
		creators := make([]map[string]any, 0, len(in.Asset.Creators))
		for _, c := range in.Asset.Creators {
			creators = append(creators, map[string]any{
				"address": strings.TrimSpace(c.Address),
				"share":   c.Share,
			})
		}
		properties["creators"] = creators
	}

	payload := map[string]any{
		"name":                    name,
		"symbol":                  symbol,
		"description":             strings.TrimSpace(in.Description),
		"image":                   image,
		"seller_fee_basis_points": in.Asset.SellerFeeBasisPoints,
		"attributes": []map[string]any{
			{"trait_type": "decimals", "value": in.Asset.Decimals},
		},
		"properties": properties,
	}
	if !in.CreatedAt.IsZero() {
		payload["created_at"] = in.CreatedAt.UTC().Format(time.RFC3339)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata json: %w", err)
	}
	return b, nil
}
