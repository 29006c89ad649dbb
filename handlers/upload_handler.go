package handlers

import (
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	config "github.com/taskpay/taskpay_backend/configs"
)

// GenerateUploadSignature signs a direct browser upload for task proof
// screenshots and KYC documents; the backend never proxies file bytes.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to initialize Cloudinary"})
	}

	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to parse Cloudinary URL"})
	}
	secret, _ := parsedURL.User.Password()

	folder := "taskpay_proofs"
	if c.Query("purpose") == "kyc" {
		folder = "taskpay_kyc"
	}

	paramsToSign, err := api.StructToParams(uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"signature": signature,
			"timestamp": timestamp,
			"api_key":   cld.Config.Cloud.APIKey,
			"folder":    folder,
		},
	})
}
