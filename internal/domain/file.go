package domain

import "time"

// FileType classifies a stored record.
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// RootParentID is the sentinel parent meaning "no parent folder".
const RootParentID int64 = 0

// IsValidType reports whether t is one of the three allowed record types.
func IsValidType(t FileType) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// FileRecord is the metadata entity for a folder, file, or image.
// Only IsPublic is mutable after creation.
type FileRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	OwnerID   int64     `json:"userId" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Type      FileType  `json:"type" gorm:"not null"`
	IsPublic  bool      `json:"isPublic" gorm:"not null;default:false"`
	ParentID  int64     `json:"parentId" gorm:"index;not null;default:0"`
	LocalPath string    `json:"-"` // blob handle; empty for folders
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

// FileView is the public projection returned by the API. Content bytes and
// the blob handle are never exposed.
type FileView struct {
	ID       int64    `json:"id"`
	UserID   int64    `json:"userId"`
	Name     string   `json:"name"`
	Type     FileType `json:"type"`
	IsPublic bool     `json:"isPublic"`
	ParentID int64    `json:"parentId"`
}

// View returns the public projection of the record.
func (r *FileRecord) View() FileView {
	return FileView{
		ID:       r.ID,
		UserID:   r.OwnerID,
		Name:     r.Name,
		Type:     r.Type,
		IsPublic: r.IsPublic,
		ParentID: r.ParentID,
	}
}
