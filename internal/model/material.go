package model

// MaterialExam scopes a material to an exam track. Unlike a student's
// ExamType it allows "both".
type MaterialExam string

const (
	MaterialOGE  MaterialExam = "oge"
	MaterialEGE  MaterialExam = "ege"
	MaterialBoth MaterialExam = "both"
)

// Material is a teaching resource owned by exactly one tutor. A student sees
// a material only when the student's CreatedBy equals the material's TutorID.
type Material struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	TutorID       uint         `gorm:"index;not null" json:"tutor_id"`
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	FileType      string       `gorm:"size:50" json:"file_type"`
	FileSize      int64        `json:"file_size"`
	FilePath      string       `gorm:"size:512" json:"file_path"`
	Category      string       `gorm:"size:100;index" json:"category"`
	ExamType      MaterialExam `gorm:"size:10;not null;default:both" json:"exam_type"`
	DownloadCount int          `gorm:"not null;default:0" json:"download_count"`
}

func (Material) TableName() string { return "materials" }
