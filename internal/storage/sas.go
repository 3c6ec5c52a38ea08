package storage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/rs/zerolog/log"
)

// clockSkewMargin backdates the SAS start time so freshly issued URLs are
// valid even when the local clock runs ahead of the storage service.
const clockSkewMargin = 5 * time.Minute

// ReadSASURL builds a read-only SAS URL for a blob, valid for the given
// expiry window.
func (s *Service) ReadSASURL(containerName, blobName string, expiry time.Duration) (string, error) {
	cred, err := azblob.NewSharedKeyCredential(s.accountName, s.accountKey)
	if err != nil {
		return "", fmt.Errorf("shared key credential: %w", err)
	}

	perms := sas.BlobPermissions{Read: true}
	now := time.Now().UTC()
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		StartTime:     now.Add(-clockSkewMargin),
		ExpiryTime:    now.Add(expiry),
		Permissions:   perms.String(),
		ContainerName: containerName,
		BlobName:      blobName,
	}

	qp, err := values.SignWithSharedKey(cred)
	if err != nil {
		return "", fmt.Errorf("sign SAS: %w", err)
	}

	u := fmt.Sprintf("https://%s.blob.%s/%s/%s?%s",
		s.accountName, s.endpointSuffix, containerName, blobName, qp.Encode())

	log.Info().
		Str("container", containerName).
		Str("blob", blobName).
		Dur("expiry", expiry).
		Msg("Generated read SAS URL")
	return u, nil
}

// SASCheck is the outcome of verifying a SAS URL with a HEAD request.
type SASCheck struct {
	StatusCode    int
	ContentType   string
	ContentLength int64
}

// OK reports whether the URL answered with HTTP 200.
func (c SASCheck) OK() bool {
	return c.StatusCode == http.StatusOK
}

// VerifySASURL issues a HEAD request against a SAS URL and reports the
// status and content headers. A nil client uses a default 10s timeout.
func VerifySASURL(ctx context.Context, client *http.Client, sasURL string) (SASCheck, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, sasURL, nil)
	if err != nil {
		return SASCheck{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return SASCheck{}, fmt.Errorf("verify SAS URL: %w", err)
	}
	defer resp.Body.Close()

	check := SASCheck{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if v := resp.Header.Get("Content-Length"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			check.ContentLength = n
		}
	}
	return check, nil
}
