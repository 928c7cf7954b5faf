package constants

// Context keys
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "user_id"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength         = 6
	DefaultTokenExpireMinutes = 30
)

// Uploads
const (
	DefaultMaxUploadMB = 5
)

// ImageContentTypes lists the accepted mimetypes for project images.
var ImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PDFContentType is the only accepted mimetype for TCC files.
const PDFContentType = "application/pdf"
