package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// MaxImageSize caps avatar, logo and cover uploads
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadImage validates an uploaded image by sniffing its content, stores it
// under bucket/<owner>/<random>.<ext> and returns its public URL. The upload
// completes before the caller records the URL anywhere.
func UploadImage(ctx context.Context, store ObjectStore, bucket string, owner uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperrors.NewValidationError("no file uploaded")
	}
	if fh.Size > MaxImageSize {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("file exceeds the %d MiB limit", MaxImageSize>>20)).WithCode(apperrors.ErrFileTooLarge.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	head = head[:n]

	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"only JPEG, PNG, GIF or WebP images are accepted").WithCode(apperrors.ErrUnsupportedFileType.Error())
	}

	name := fmt.Sprintf("%s/%d-%s%s", owner, time.Now().Unix(), uuid.NewString()[:8], ext)
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), f), MaxImageSize)

	url, err := store.Upload(ctx, bucket, name, body)
	if err != nil {
		return "", apperrors.NewUpstreamError("object store rejected the upload", err)
	}
	return url, nil
}
