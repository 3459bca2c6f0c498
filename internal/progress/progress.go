// Package progress computes the per-student progress indicator shown on the
// cabinet dashboard. It is deliberately a small strategy interface: the
// metric is presentation-level and must stay deterministic so listings are
// testable.
package progress

type Strategy interface {
	// Compute maps a conducted-lesson count onto a 0-100 progress value.
	Compute(lessonCount int64) int
}

// ByLessonCount measures progress as the share of a fixed course length the
// student has already completed.
type ByLessonCount struct {
	// CourseLength is the number of lessons considered a full course.
	CourseLength int64
}

// DefaultCourseLength roughly matches one weekly lesson over a school year.
const DefaultCourseLength = 40

func NewByLessonCount() ByLessonCount {
	return ByLessonCount{CourseLength: DefaultCourseLength}
}

func (s ByLessonCount) Compute(lessonCount int64) int {
	length := s.CourseLength
	if length <= 0 {
		length = DefaultCourseLength
	}
	if lessonCount <= 0 {
		return 0
	}
	if lessonCount >= length {
		return 100
	}
	return int(lessonCount * 100 / length)
}
