package mint_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metadataee/metadata/internal/application/mint"
	tokendom "github.com/metadataee/metadata/internal/domain/token"
)

func TestBuildMetadataJSON(t *testing.T) {
	asset := testAsset()
	asset.SellerFeeBasisPoints = 250

	raw, err := mint.BuildMetadataJSON(mint.MetadataInput{
		Asset:       asset,
		Description: " The first Ghibli-styled Pepe ",
		Image:       "https://example.com/pepe.png",
		CreatedAt:   time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var doc struct {
		Name                 string `json:"name"`
		Symbol               string `json:"symbol"`
		Description          string `json:"description"`
		Image                string `json:"image"`
		SellerFeeBasisPoints int    `json:"seller_fee_basis_points"`
		CreatedAt            string `json:"created_at"`
		Properties           struct {
			Category string `json:"category"`
			Files    []struct {
				URI  string `json:"uri"`
				Type string `json:"type"`
			} `json:"files"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "Ghibli Pepe", doc.Name)
	assert.Equal(t, "GHIBLIPEPE", doc.Symbol)
	assert.Equal(t, "The first Ghibli-styled Pepe", doc.Description)
	assert.Equal(t, "https://example.com/pepe.png", doc.Image)
	assert.Equal(t, 250, doc.SellerFeeBasisPoints)
	assert.Equal(t, "2025-04-01T12:00:00Z", doc.CreatedAt)
	assert.Equal(t, "image", doc.Properties.Category)
	require.Len(t, doc.Properties.Files, 1)
	assert.Equal(t, doc.Image, doc.Properties.Files[0].URI)
}

func TestBuildMetadataJSON_NoImage(t *testing.T) {
	raw, err := mint.BuildMetadataJSON(mint.MetadataInput{Asset: testAsset()})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "created_at")
	assert.Empty(t, doc["properties"].(map[string]any)["files"])
}

func TestBuildMetadataJSON_RequiresNameAndSymbol(t *testing.T) {
	asset := testAsset()
	asset.Name = " "
	_, err := mint.BuildMetadataJSON(mint.MetadataInput{Asset: asset})
	assert.ErrorIs(t, err, tokendom.ErrInvalidName)

	asset = testAsset()
	asset.Symbol = ""
	_, err = mint.BuildMetadataJSON(mint.MetadataInput{Asset: asset})
	assert.ErrorIs(t, err, tokendom.ErrInvalidSymbol)
}
