package gcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataObjectPath(t *testing.T) {
	data := []byte(`{"name":"Ghibli Pepe"}`)

	p := MetadataObjectPath("metadata/", "GHIBLIPEPE", data)
	assert.Regexp(t, `^metadata/ghiblipepe-[0-9a-f]{12}\.json$`, p)
	assert.Equal(t, p, MetadataObjectPath("metadata", "GHIBLIPEPE", data), "same content, same name")
	assert.NotEqual(t, p, MetadataObjectPath("metadata", "GHIBLIPEPE", []byte(`{}`)))

	assert.Regexp(t, `^token-[0-9a-f]{12}\.json$`, MetadataObjectPath("", " ", data))
	assert.Regexp(t, `^m/a_b-[0-9a-f]{12}\.json$`, MetadataObjectPath("m", "A/B", data))
}

func TestMetadataRepositoryGCS_Guards(t *testing.T) {
	ctx := context.Background()

	_, err := NewMetadataRepositoryGCS(nil, "bucket", "metadata", "SYM", nil).UploadMetadata(ctx, []byte(`{}`))
	require.Error(t, err)

	var nilRepo *MetadataRepositoryGCS
	_, err = nilRepo.UploadMetadata(ctx, []byte(`{}`))
	require.Error(t, err)
}
