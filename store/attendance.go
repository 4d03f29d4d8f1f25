package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-school-admin/model"
)

// ListAttendances returns every attendance record, newest date first.
func (s *Store) ListAttendances(ctx context.Context) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := s.db.NewSelect().
		Model(&records).
		Order("date DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAttendanceByStudent returns a student's records, newest date first.
func (s *Store) ListAttendanceByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := s.db.NewSelect().
		Model(&records).
		Where("a.student_id = ?", studentID).
		Order("date DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAttendanceByTeacher returns a teacher's records, newest date first.
func (s *Store) ListAttendanceByTeacher(ctx context.Context, teacherID string) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := s.db.NewSelect().
		Model(&records).
		Where("a.teacher_id = ?", teacherID).
		Order("date DESC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// ListAttendanceByDate returns every record whose date falls on the given
// calendar day in UTC.
func (s *Store) ListAttendanceByDate(ctx context.Context, day time.Time) ([]model.Attendance, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var records []model.Attendance
	if err := s.db.NewSelect().
		Model(&records).
		Where("a.date >= ? AND a.date < ?", start, end).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateAttendance inserts one attendance record. A missing id and zero
// CreatedAt are filled in.
func (s *Store) CreateAttendance(ctx context.Context, record *model.Attendance) error {
	fillAttendance(record)
	_, err := s.db.NewInsert().Model(record).Exec(ctx)
	return err
}

// CreateAttendances bulk-inserts attendance records in one statement.
func (s *Store) CreateAttendances(ctx context.Context, records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		fillAttendance(&records[i])
	}
	_, err := s.db.NewInsert().Model(&records).Exec(ctx)
	return err
}

// UpdateAttendanceStatus changes only the status of one record.
func (s *Store) UpdateAttendanceStatus(ctx context.Context, id string, status model.AttendanceStatus) error {
	res, err := s.db.NewUpdate().
		Model((*model.Attendance)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "attendance", id)
}

// DeleteAttendance removes one record by id.
func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*model.Attendance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, "attendance", id)
}

func fillAttendance(record *model.Attendance) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = nowUTC()
	}
}
