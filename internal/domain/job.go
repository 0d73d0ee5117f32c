package domain

import "strconv"

// ThumbnailSizes are the fixed long-edge targets generated for every image.
var ThumbnailSizes = []int{500, 250, 100}

// IsValidThumbnailSize reports whether size is one of the generated targets.
func IsValidThumbnailSize(size int) bool {
	for _, s := range ThumbnailSizes {
		if s == size {
			return true
		}
	}
	return false
}

// ThumbnailJob instructs the worker to generate derivatives for one record.
// It carries identifiers only; the worker re-reads the record for the blob
// handle.
type ThumbnailJob struct {
	UserID int64 `json:"user_id"`
	FileID int64 `json:"file_id"`
}

// DerivativeHandle returns the blob handle of a size variant. Variants share
// the primary handle as a prefix.
func DerivativeHandle(handle string, size int) string {
	return handle + "_" + strconv.Itoa(size)
}
