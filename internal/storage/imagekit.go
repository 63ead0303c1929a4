package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
)

// Uploader forwards a binary payload to the media host and returns its
// public URL. Any failure is fatal to the enclosing operation; there are no
// retries and no delete-on-rollback, so a persist failure after a successful
// upload leaves an orphaned file on the host.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
}

// ImageKit wraps the ImageKit SDK client. The media upload is the only
// external network dependency on the write path, so every call carries its
// own timeout instead of inheriting whatever the transport allows.
type ImageKit struct {
	client  *imagekit.ImageKit
	timeout time.Duration
}

var _ Uploader = (*ImageKit)(nil)

func NewImageKit(privateKey, publicKey, urlEndpoint string, timeout time.Duration) *ImageKit {
	return &ImageKit{
		client: imagekit.NewFromParams(imagekit.NewParams{
			PrivateKey:  privateKey,
			PublicKey:   publicKey,
			UrlEndpoint: urlEndpoint,
		}),
		timeout: timeout,
	}
}

func (ik *ImageKit) Upload(ctx context.Context, data []byte, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ik.timeout)
	defer cancel()

	unique := true
	res, err := ik.client.Uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParam{
		FileName:          name,
		UseUniqueFileName: &unique,
	})
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	if res.Data.Url == "" {
		return "", fmt.Errorf("media upload: response missing url")
	}
	return res.Data.Url, nil
}
