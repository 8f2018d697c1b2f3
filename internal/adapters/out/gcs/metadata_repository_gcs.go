// internal/adapters/out/gcs/metadata_repository_gcs.go
package gcs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	gcscommon "github.com/metadataee/metadata/internal/adapters/out/gcs/common"
	"github.com/metadataee/metadata/internal/platform/logging"
)

// MetadataRepositoryGCS stores off-chain token metadata JSON in a public
// bucket and returns its URL for the on-chain metadata account.
//   - Object name is content addressed ("<prefix>/<symbol>-<sha256[:12]>.json"),
//     so a URL written on chain never changes content.
//   - Writes use a DoesNotExist precondition; an identical existing object is
//     treated as success.
type MetadataRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
	Symbol string

	log *zap.Logger
}

const metadataContentType = "application/json; charset=utf-8"

func NewMetadataRepositoryGCS(client *storage.Client, bucket, prefix, symbol string, logger *zap.Logger) *MetadataRepositoryGCS {
	return &MetadataRepositoryGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
		Prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		Symbol: strings.TrimSpace(symbol),
		log:    logging.OrNop(logger).Named("gcs_metadata"),
	}
}

// UploadMetadata implements mint.MetadataUploader.
func (r *MetadataRepositoryGCS) UploadMetadata(ctx context.Context, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("MetadataRepositoryGCS: nil storage client")
	}
	if r.Bucket == "" {
		return "", errors.New("MetadataRepositoryGCS: bucket is empty")
	}
	if len(data) == 0 {
		return "", errors.New("MetadataRepositoryGCS: metadata json is empty")
	}

	object := MetadataObjectPath(r.Prefix, r.Symbol, data)
	oh := r.Client.Bucket(r.Bucket).Object(object).If(storage.Conditions{DoesNotExist: true})

	w := oh.NewWriter(ctx)
	w.ContentType = metadataContentType
	w.CacheControl = "public, max-age=300"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gs://%s/%s: %w", r.Bucket, object, err)
	}
	if err := w.Close(); err != nil {
		// same name means same content; 412 is "already uploaded"
		var gerr *googleapi.Error
		if !errors.As(err, &gerr) || gerr.Code != http.StatusPreconditionFailed {
			return "", fmt.Errorf("close gs://%s/%s: %w", r.Bucket, object, err)
		}
		r.log.Info("metadata object already exists", zap.String("object", object))
	}

	uri := gcscommon.GCSPublicURL(r.Bucket, object, "")
	r.log.Info("metadata uploaded",
		zap.String("bucket", r.Bucket),
		zap.String("object", object),
		zap.Int("bytes", len(data)),
	)
	return uri, nil
}

// MetadataObjectPath is "<prefix>/<symbol>-<hash>.json" with the symbol
// lower-cased and the hash taken over data.
func MetadataObjectPath(prefix, symbol string, data []byte) string {
	sum := sha256.Sum256(data)
	name := strings.ToLower(strings.TrimSpace(symbol))
	if name == "" {
		name = "token"
	}
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return gcscommon.JoinObjectPath(prefix, fmt.Sprintf("%s-%s.json", name, hex.EncodeToString(sum[:])[:12]))
}
