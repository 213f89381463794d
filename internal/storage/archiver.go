package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// ScreenshotArchiver retains the raw screenshot bytes of a completed
// analysis. Archival is best-effort and runs off the request path.
type ScreenshotArchiver interface {
	Archive(ctx context.Context, analysisID int64, format string, data []byte) error
}

type azureArchiver struct {
	client    *azblob.Client
	container string
}

// NewAzureArchiver creates an archiver that uploads screenshots to the given
// Azure Blob Storage container.
func NewAzureArchiver(accountName, accountKey, container string) (ScreenshotArchiver, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure client: %w", err)
	}

	return &azureArchiver{client: client, container: container}, nil
}

// Archive uploads the screenshot under a name derived from the analysis id
// and upload date, so blobs can be correlated with stored records.
func (a *azureArchiver) Archive(ctx context.Context, analysisID int64, format string, data []byte) error {
	blobName := fmt.Sprintf("%s/analysis-%d.%s", time.Now().UTC().Format("2006-01-02"), analysisID, format)

	_, err := a.client.UploadBuffer(ctx, a.container, blobName, data, nil)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return nil
}

type noopArchiver struct{}

// NewNoopArchiver returns an archiver that discards screenshots. Used when no
// storage account is configured.
func NewNoopArchiver() ScreenshotArchiver {
	return noopArchiver{}
}

func (noopArchiver) Archive(context.Context, int64, string, []byte) error {
	return nil
}
