// internal/infra/arweave/uploader.go
package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/metadataee/metadata/internal/platform/logging"
)

// DefaultGatewayURL serves uploads that only report a transaction id.
const DefaultGatewayURL = "https://gateway.irys.xyz"

const maxErrorBody = 2048

// HTTPUploader posts metadata JSON to an Irys uploader service (for example
// one deployed on Cloud Run) and returns the permanent URL.
type HTTPUploader struct {
	client     *http.Client
	baseURL    string // e.g. "https://irys-uploader-xxxx.a.run.app"
	apiKey     string // sent as a Bearer token when set
	gatewayURL string
	log        *zap.Logger
}

// NewHTTPUploader は Arweave/Irys 用の HTTP uploader を生成します。
func NewHTTPUploader(baseURL, apiKey string, logger *zap.Logger) *HTTPUploader {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPUploader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(apiKey),
		gatewayURL: DefaultGatewayURL,
		log:        logging.OrNop(logger).Named("arweave"),
	}
}

// UploadMetadata implements mint.MetadataUploader.
func (u *HTTPUploader) UploadMetadata(ctx context.Context, data []byte) (string, error) {
	u.log.Debug("UploadMetadata called", zap.Int("len", len(data)))
	return u.UploadJSON(ctx, data)
}

// UploadJSON uploads metadataJSON through the uploader service. The response
// carries either "uri" or an Arweave transaction "id".
func (u *HTTPUploader) UploadJSON(ctx context.Context, metadataJSON []byte) (string, error) {
	if len(metadataJSON) == 0 {
		return "", fmt.Errorf("metadataJSON is empty")
	}
	if !json.Valid(metadataJSON) {
		return "", fmt.Errorf("metadataJSON is not valid json")
	}
	if u.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; arweave endpoint not configured")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u.baseURL+"/upload/json",
		bytes.NewReader(metadataJSON),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		u.log.Warn("http request failed", zap.Error(err))
		return "", fmt.Errorf("upload metadata to arweave: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(bodyBytes)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		u.log.Warn("upload metadata failed", zap.Int("status", resp.StatusCode), zap.String("body", body))
		return "", fmt.Errorf("upload metadata failed: status=%d body=%s", resp.StatusCode, body)
	}

	var res struct {
		URI string `json:"uri"` // e.g. "https://gateway.irys.xyz/xxxx"
		ID  string `json:"id"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	uri := strings.TrimSpace(res.URI)
	if uri == "" && strings.TrimSpace(res.ID) != "" {
		uri = u.gatewayURL + "/" + strings.TrimSpace(res.ID)
	}
	if uri == "" {
		return "", fmt.Errorf("upload response has empty uri")
	}

	u.log.Info("UploadJSON OK", zap.String("uri", uri))
	return uri, nil
}
