package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The storefront maps these codes to user-facing messages, so validation,
// not-found, and storage failures must stay distinguishable.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of range (e.g. negative quantity)

	// ==================== Catalog (BOOK_) ====================
	BookNotFound      = "BOOK_NOT_FOUND"
	BookAlreadyExists = "BOOK_ALREADY_EXISTS"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound = "REVIEW_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartNotFound     = "CART_NOT_FOUND"      // unknown cart identifier on a mutation
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // book not in an existing cart

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Storage / internal (STORAGE_, INTERNAL_) ====================
	StorageUnavailable    = "STORAGE_UNAVAILABLE" // persistence layer unreachable or timed out
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
