package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// AttendanceStatus marks a single day's attendance.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Attendance records one user's presence on one date. Exactly one of
// StudentID/TeacherID is populated.
type Attendance struct {
	bun.BaseModel `bun:"table:attendances,alias:a"`

	ID        string           `bun:"id,pk" json:"id"`
	StudentID string           `bun:"student_id" json:"studentId,omitempty"`
	TeacherID string           `bun:"teacher_id" json:"teacherId,omitempty"`
	Date      time.Time        `bun:"date,notnull" json:"date"`
	Status    AttendanceStatus `bun:"status,notnull" json:"status"`
	CreatedAt time.Time        `bun:"created_at,notnull" json:"createdAt"`
}

// Validate checks the student-xor-teacher rule along with field constraints.
func (a Attendance) Validate() error {
	if err := validation.ValidateStruct(&a,
		validation.Field(&a.Date, validation.Required),
		validation.Field(&a.Status, validation.Required, validation.In(AttendancePresent, AttendanceAbsent, AttendanceLate)),
	); err != nil {
		return err
	}
	if (a.StudentID == "") == (a.TeacherID == "") {
		return validation.Errors{"studentId": validation.NewError(
			"validation_attendance_subject", "exactly one of studentId and teacherId must be set")}
	}
	return nil
}
