package repository

import (
	"testing"

	"anoa.com/tutorcabinet/internal/model"
)

func TestCreateStudentWritesAllThreeRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	tutor := createTutor(t, db, "tutor")

	exam := model.ExamEGE
	student := &model.User{
		Username:  "vanya",
		Password:  "pw",
		Role:      model.RoleStudent,
		FirstName: "Ivan",
		LastName:  "Sidorov",
		ExamType:  &exam,
		IsActive:  true,
		CreatedBy: &tutor.ID,
	}
	topic := &model.Topic{Title: "Lessons with Ivan Sidorov", CreatedBy: tutor.ID}
	slot := &model.ScheduleSlot{
		TutorID:   tutor.ID,
		DayOfWeek: model.Friday,
		StartTime: "16:00",
		EndTime:   "17:00",
		Status:    model.SlotActive,
	}

	if err := repo.CreateStudent(testContext(), student, topic, slot); err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	var slots []model.ScheduleSlot
	if err := db.Where("student_id = ?", student.ID).Find(&slots).Error; err != nil {
		t.Fatalf("failed to load slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("slot count = %d, want 1", len(slots))
	}
	if slots[0].TutorID != tutor.ID || slots[0].TopicID != topic.ID {
		t.Errorf("slot wiring = tutor %d topic %d, want tutor %d topic %d",
			slots[0].TutorID, slots[0].TopicID, tutor.ID, topic.ID)
	}

	var topicCount int64
	db.Model(&model.Topic{}).Where("created_by = ?", tutor.ID).Count(&topicCount)
	if topicCount != 1 {
		t.Errorf("topic count = %d, want 1", topicCount)
	}
}

func TestCreateStudentDuplicateLeavesNoPartialRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	tutor := createTutor(t, db, "tutor")
	createStudent(t, db, "vanya", tutor.ID)

	student := &model.User{
		Username:  "vanya", // already taken
		Password:  "pw",
		Role:      model.RoleStudent,
		IsActive:  true,
		CreatedBy: &tutor.ID,
	}
	topic := &model.Topic{Title: "Lessons", CreatedBy: tutor.ID}
	slot := &model.ScheduleSlot{TutorID: tutor.ID, DayOfWeek: model.Monday, StartTime: "10:00", EndTime: "11:00", Status: model.SlotActive}

	if err := repo.CreateStudent(testContext(), student, topic, slot); err == nil {
		t.Fatal("CreateStudent() with duplicate username succeeded, want error")
	}

	var topicCount, slotCount int64
	db.Model(&model.Topic{}).Count(&topicCount)
	db.Model(&model.ScheduleSlot{}).Count(&slotCount)
	if topicCount != 0 || slotCount != 0 {
		t.Errorf("partial rows after failed create: topics=%d slots=%d, want 0/0", topicCount, slotCount)
	}
}

func TestDeactivateCancelsOnlyTargetStudentsSlots(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	tutor := createTutor(t, db, "tutor")
	topic := createTopic(t, db, tutor.ID)

	s1 := createStudent(t, db, "first", tutor.ID)
	s2 := createStudent(t, db, "second", tutor.ID)
	createSlot(t, db, s1.ID, tutor.ID, topic.ID, model.Monday, "10:00", "11:00")
	createSlot(t, db, s1.ID, tutor.ID, topic.ID, model.Thursday, "12:00", "13:00")
	createSlot(t, db, s2.ID, tutor.ID, topic.ID, model.Tuesday, "10:00", "11:00")

	affected, err := repo.Deactivate(testContext(), s1.ID)
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if affected != 1 {
		t.Fatalf("Deactivate() affected = %d, want 1", affected)
	}

	var cancelled, active int64
	db.Model(&model.ScheduleSlot{}).Where("student_id = ? AND status = ?", s1.ID, model.SlotCancelled).Count(&cancelled)
	db.Model(&model.ScheduleSlot{}).Where("student_id = ? AND status = ?", s2.ID, model.SlotActive).Count(&active)
	if cancelled != 2 {
		t.Errorf("cancelled slots for target = %d, want 2", cancelled)
	}
	if active != 1 {
		t.Errorf("active slots for other student = %d, want 1", active)
	}

	var target model.User
	db.First(&target, s1.ID)
	if target.IsActive {
		t.Error("target student still active after Deactivate()")
	}
}

func TestDeactivateMissingStudentAffectsNothing(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	affected, err := repo.Deactivate(testContext(), 12345)
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("Deactivate() affected = %d, want 0", affected)
	}
}

func TestFindStudentsByTutorExcludesInactiveAndForeign(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	tutorA := createTutor(t, db, "tutor_a")
	tutorB := createTutor(t, db, "tutor_b")
	topic := createTopic(t, db, tutorA.ID)

	active := createStudent(t, db, "active", tutorA.ID)
	createSlot(t, db, active.ID, tutorA.ID, topic.ID, model.Wednesday, "14:00", "15:00")

	gone := createStudent(t, db, "gone", tutorA.ID)
	db.Model(&model.User{}).Where("id = ?", gone.ID).Update("is_active", false)

	createStudent(t, db, "foreign", tutorB.ID)

	rows, err := repo.FindStudentsByTutor(testContext(), tutorA.ID)
	if err != nil {
		t.Fatalf("FindStudentsByTutor() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}
	if rows[0].Username != "active" {
		t.Errorf("username = %q, want %q", rows[0].Username, "active")
	}
	if rows[0].DayOfWeek == nil || *rows[0].DayOfWeek != model.Wednesday {
		t.Errorf("joined day_of_week = %v, want wednesday", rows[0].DayOfWeek)
	}
	if rows[0].LessonTime == nil || *rows[0].LessonTime != "14:00" {
		t.Errorf("joined lesson_time = %v, want 14:00", rows[0].LessonTime)
	}
}
