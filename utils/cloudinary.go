package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func initCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
}

// UploadFile stores a file (certification/ID document, class image) in the
// given folder and returns its public URL. The public ID is timestamped so
// repeated uploads never collide. Stored objects have no access control.
func UploadFile(ctx context.Context, file interface{}, folder string) (string, error) {
	cld, err := initCloudinary()
	if err != nil {
		return "", err
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), GenerateCode())
	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
