package repository

import (
	"testing"
	"time"

	"anoa.com/tutorcabinet/internal/model"
)

func TestListForStudentWeekdayThenTimeOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	tutor := createTutor(t, db, "tutor")
	topic := createTopic(t, db, tutor.ID)
	student := createStudent(t, db, "vanya", tutor.ID)

	// Inserted deliberately out of order.
	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Wednesday, "10:00", "11:00")
	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Monday, "09:00", "10:00")
	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Monday, "15:00", "16:00")
	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Sunday, "08:00", "09:00")

	rows, err := repo.ListForStudent(testContext(), student.ID)
	if err != nil {
		t.Fatalf("ListForStudent() error = %v", err)
	}

	want := []struct {
		day   model.Weekday
		start string
	}{
		{model.Monday, "09:00"},
		{model.Monday, "15:00"},
		{model.Wednesday, "10:00"},
		{model.Sunday, "08:00"},
	}
	if len(rows) != len(want) {
		t.Fatalf("row count = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].DayOfWeek != w.day || rows[i].StartTime != w.start {
			t.Errorf("rows[%d] = %s %s, want %s %s",
				i, rows[i].DayOfWeek, rows[i].StartTime, w.day, w.start)
		}
	}
}

func TestListForStudentSkipsCancelledSlots(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	tutor := createTutor(t, db, "tutor")
	topic := createTopic(t, db, tutor.ID)
	student := createStudent(t, db, "vanya", tutor.ID)

	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Monday, "09:00", "10:00")
	cancelled := createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Tuesday, "09:00", "10:00")
	db.Model(&model.ScheduleSlot{}).Where("id = ?", cancelled.ID).Update("status", model.SlotCancelled)

	rows, err := repo.ListForStudent(testContext(), student.ID)
	if err != nil {
		t.Fatalf("ListForStudent() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}
	if rows[0].DayOfWeek != model.Monday {
		t.Errorf("surviving slot day = %s, want monday", rows[0].DayOfWeek)
	}
}

func TestListForTutorJoinsStudentDetails(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	tutor := createTutor(t, db, "tutor")
	topic := createTopic(t, db, tutor.ID)
	student := createStudent(t, db, "vanya", tutor.ID)
	createSlot(t, db, student.ID, tutor.ID, topic.ID, model.Friday, "16:00", "17:00")

	rows, err := repo.ListForTutor(testContext(), tutor.ID)
	if err != nil {
		t.Fatalf("ListForTutor() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.StudentName != "Ivan" || row.StudentLastName != "Sidorov" {
		t.Errorf("student name = %q %q, want Ivan Sidorov", row.StudentName, row.StudentLastName)
	}
	if row.LessonPrice != 1500 {
		t.Errorf("lesson price = %v, want 1500", row.LessonPrice)
	}
	if row.TopicTitle != topic.Title {
		t.Errorf("topic title = %q, want %q", row.TopicTitle, topic.Title)
	}
}

func TestCountLessonsScopedToStudent(t *testing.T) {
	db := openTestDB(t)
	repo := NewScheduleRepository(db)
	tutor := createTutor(t, db, "tutor")
	topic := createTopic(t, db, tutor.ID)

	s1 := createStudent(t, db, "first", tutor.ID)
	s2 := createStudent(t, db, "second", tutor.ID)
	slot1 := createSlot(t, db, s1.ID, tutor.ID, topic.ID, model.Monday, "10:00", "11:00")
	slot2 := createSlot(t, db, s1.ID, tutor.ID, topic.ID, model.Thursday, "10:00", "11:00")
	other := createSlot(t, db, s2.ID, tutor.ID, topic.ID, model.Tuesday, "10:00", "11:00")

	for _, scheduleID := range []uint{slot1.ID, slot1.ID, slot2.ID, other.ID} {
		if err := repo.RecordLesson(testContext(), &model.Lesson{ScheduleID: scheduleID, LessonDate: time.Now()}); err != nil {
			t.Fatalf("RecordLesson() error = %v", err)
		}
	}

	count, err := repo.CountLessons(testContext(), s1.ID)
	if err != nil {
		t.Fatalf("CountLessons() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountLessons() = %d, want 3", count)
	}
}
