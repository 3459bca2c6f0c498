package model

import "time"

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdayRanks = map[Weekday]int{
	Monday:    1,
	Tuesday:   2,
	Wednesday: 3,
	Thursday:  4,
	Friday:    5,
	Saturday:  6,
	Sunday:    7,
}

// Rank returns the fixed ordering position (monday=1 .. sunday=7) used by
// every schedule listing. Unknown values sort last.
func (w Weekday) Rank() int {
	if r, ok := weekdayRanks[w]; ok {
		return r
	}
	return 8
}

func (w Weekday) Valid() bool {
	_, ok := weekdayRanks[w]
	return ok
}

type SlotStatus string

const (
	SlotActive    SlotStatus = "active"
	SlotCancelled SlotStatus = "cancelled"
)

// ScheduleSlot is one weekly recurring lesson. Times are wall-clock "HH:MM"
// strings; EndTime is always StartTime + 1h, computed once at creation and
// never edited. The only lifecycle transition is active -> cancelled, which
// happens when the student is deactivated.
type ScheduleSlot struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	StudentID  uint       `gorm:"index;not null" json:"student_id"`
	TutorID    uint       `gorm:"index;not null" json:"tutor_id"`
	TopicID    uint       `gorm:"not null" json:"topic_id"`
	DayOfWeek  Weekday    `gorm:"size:10;not null" json:"day_of_week"`
	StartTime  string     `gorm:"size:5;not null" json:"start_time"`
	EndTime    string     `gorm:"size:5;not null" json:"end_time"`
	LessonLink *string    `gorm:"size:255" json:"lesson_link,omitempty"`
	Status     SlotStatus `gorm:"size:10;not null;default:active" json:"status"`
}

func (ScheduleSlot) TableName() string { return "schedule" }

// Lesson is one conducted occurrence of a schedule slot, recorded by the
// tutor. Lesson rows back the per-student lesson count and progress metric.
type Lesson struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ScheduleID uint      `gorm:"index;not null" json:"schedule_id"`
	LessonDate time.Time `gorm:"not null" json:"lesson_date"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Lesson) TableName() string { return "lessons" }
