package controllers

import (
	"strings"
	"time"

	"robolibrary/services"
	"robolibrary/utils"

	"github.com/gin-gonic/gin"
)

type AssetController struct {
	assetService *services.AssetService
	maxFileSize  int64
}

func NewAssetController(assetService *services.AssetService, maxFileSize int64) *AssetController {
	return &AssetController{assetService: assetService, maxFileSize: maxFileSize}
}

// UploadAsset streams a multipart file into the asset bucket and returns the
// object name callers then pass to the content upload endpoint as file_url.
func (ac *AssetController) UploadAsset(c *gin.Context) {
	userID := c.GetString("userId")

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", err.Error())
		return
	}

	if header.Size > ac.maxFileSize {
		utils.ErrorResponse(c, 413, "File exceeds the maximum allowed size", nil)
		return
	}
	if err := utils.ValidateAssetName(header.Filename); err != nil {
		utils.DomainErrorResponse(c, err, "Invalid file name")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	result, err := ac.assetService.UploadAsset(c.Request.Context(), file, header.Filename, userID)
	if err != nil {
		utils.ErrorResponse(c, 502, "Failed to store asset", err.Error())
		return
	}

	utils.CreatedResponse(c, "Asset uploaded successfully", result)
}

// GetAssetURL returns a fresh signed download URL for a stored object.
func (ac *AssetController) GetAssetURL(c *gin.Context) {
	// Wildcard route params keep their leading slash.
	objectName := strings.TrimPrefix(c.Param("name"), "/")
	if err := utils.ValidateAssetName(objectName); err != nil {
		utils.DomainErrorResponse(c, err, "Invalid asset name")
		return
	}

	url, err := ac.assetService.GetDownloadURL(c.Request.Context(), objectName, 1*time.Hour)
	if err != nil {
		utils.ErrorResponse(c, 502, "Failed to generate download URL", err.Error())
		return
	}

	utils.SuccessResponse(c, "Download URL generated successfully", gin.H{"url": url})
}
