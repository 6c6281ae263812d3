package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/LuffyPiratesYeah/malmoi-server/utils"
)

type UploadController struct{}

// Upload proxies a multipart file into object storage and returns its
// public URL. The "bucket" form field selects the target folder
// (certification documents, ID documents, class images).
func (UploadController) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	folder := c.FormValue("bucket")
	if folder == "" {
		return badRequest(c, "bucket is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "cannot read uploaded file")
	}
	defer file.Close()

	url, err := utils.UploadFile(c.Context(), file, folder)
	if err != nil {
		log.Printf("upload to %s failed: %v", folder, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Error:   "INTERNAL",
			Message: "file upload failed",
		})
	}
	return c.JSON(fiber.Map{"url": url})
}
