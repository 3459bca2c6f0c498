package model

import (
	"time"
)

type Role string

const (
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

type ExamType string

const (
	ExamOGE ExamType = "oge"
	ExamEGE ExamType = "ege"
)

// User covers both tutors and students. A student always carries the owning
// tutor's id in CreatedBy; for tutors it is nil. IsActive=false is a
// soft-delete marker: deactivated users are excluded from listings and
// schedule views but kept for historical income and lesson records.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password    string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role        Role      `gorm:"size:10;not null" json:"role"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	ExamType    *ExamType `gorm:"size:10" json:"exam_type,omitempty"`
	LessonPrice float64   `json:"lesson_price"`
	ContactInfo string    `gorm:"size:255" json:"contact_info"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *uint     `gorm:"index" json:"created_by,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Topic groups a student's lessons under one subject line. One topic is
// created per student as part of student creation and is owned by the tutor.
type Topic struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   uint   `gorm:"index;not null" json:"created_by"`
}

func (Topic) TableName() string { return "topics" }

// Identity is the authenticated actor every service operation receives.
// It is established at the session boundary (JWT middleware) and passed
// explicitly; services never read ambient session state.
type Identity struct {
	UserID    uint
	Role      Role
	FirstName string
	LastName  string
}

func (i Identity) IsTutor() bool   { return i.Role == RoleTutor }
func (i Identity) IsStudent() bool { return i.Role == RoleStudent }
