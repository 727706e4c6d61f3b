package helper

import (
	"context"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"movie_booking/config"
)

// UploadPoster đẩy poster lên Cloudinary và trả về secure URL.
func UploadPoster(file *multipart.FileHeader, publicID string) (string, error) {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := cld.Upload.Upload(context.Background(), src, uploader.UploadParams{
		PublicID: publicID,
		Folder:   "movie_posters",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
