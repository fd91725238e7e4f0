package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxPageNumber = 1000000
	MaxUploadSize = 50 * 1024 * 1024 // 50MB
)

// Allowed file types
var (
	allowedPriceListExtensions = map[string]bool{
		".csv":  true,
		".xlsx": true,
		".xls":  true,
		".txt":  true,
		".pdf":  true,
	}

	allowedAvatarExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}

	allowedAvatarTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
)

// UploadPriceListRequest defines the expected multipart fields of an upload
type UploadPriceListRequest struct {
	Description string `form:"description" validate:"max=500"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParsePage validates the page query parameter
func (rv *RequestValidator) ParsePage(c *gin.Context) (int, error) {
	pageStr := c.DefaultQuery("page", "1")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	return page, nil
}

// ParseUploadRequest validates and parses a price-list upload. The extension
// check runs before anything is staged or forwarded.
func (rv *RequestValidator) ParseUploadRequest(c *gin.Context) (string, *multipart.FileHeader, error) {
	var req UploadPriceListRequest
	if err := c.ShouldBind(&req); err != nil {
		return "", nil, fmt.Errorf("invalid form data: %w", err)
	}

	if err := rv.validate.Struct(&req); err != nil {
		return "", nil, fmt.Errorf("validation failed: %w", err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("a price list file is required")
	}

	if !rv.IsValidPriceListFile(file) {
		return "", nil, fmt.Errorf("unsupported file format for %s. Allowed: csv, xlsx, xls, txt, pdf", file.Filename)
	}

	if err := rv.ValidateFileSize(file); err != nil {
		return "", nil, err
	}

	return req.Description, file, nil
}

// IsValidPriceListFile checks the upload against the extension allow-list
func (rv *RequestValidator) IsValidPriceListFile(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return allowedPriceListExtensions[ext]
}

// IsValidAvatarFile checks if the file is a valid avatar image
func (rv *RequestValidator) IsValidAvatarFile(file *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if allowedAvatarExtensions[ext] {
		return true
	}

	// Fallback: trust the declared content type when the name has no extension
	if ext == "" && allowedAvatarTypes[file.Header.Get("Content-Type")] {
		return true
	}

	return false
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}
