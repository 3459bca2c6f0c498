package model

import "time"

type IncomeStatus string

const (
	IncomePending IncomeStatus = "pending"
	IncomePaid    IncomeStatus = "paid"
	IncomeOverdue IncomeStatus = "overdue"
)

func (s IncomeStatus) Valid() bool {
	switch s {
	case IncomePending, IncomePaid, IncomeOverdue:
		return true
	}
	return false
}

// IncomeRecord is a manually entered ledger line for one billed lesson.
// StudentName is denormalized on purpose: the record must keep resolving
// after the student is deactivated. LessonDate is a "YYYY-MM-DD" string so
// that descending lexicographic order matches descending date order.
type IncomeRecord struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	TutorID     uint         `gorm:"index;not null" json:"tutor_id"`
	LessonDate  string       `gorm:"size:10;not null" json:"date"`
	StudentName string       `gorm:"size:200;not null" json:"student"`
	Exam        string       `gorm:"size:10" json:"exam"`
	Price       float64      `json:"price"`
	Status      IncomeStatus `gorm:"size:10;not null;default:pending" json:"status"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (IncomeRecord) TableName() string { return "income_lessons" }
