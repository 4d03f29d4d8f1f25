package console

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-school-admin/cache"
	"github.com/goliatone/go-school-admin/cachetag"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

// Attendance is the attendance record service.
type Attendance struct {
	store *store.Store
	cache cache.CacheService
	keys  cache.KeySerializer
}

// NewAttendance wires the attendance service.
func NewAttendance(s *store.Store, c cache.CacheService) *Attendance {
	return &Attendance{
		store: s,
		cache: c,
		keys:  cache.NewDefaultKeySerializer(),
	}
}

// All returns every attendance record, newest date first, through the cache.
func (s *Attendance) All(ctx context.Context) ([]model.Attendance, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("attendance.all"),
		[]string{cachetag.Attendances},
		func(ctx context.Context) ([]model.Attendance, error) {
			return s.store.ListAttendances(ctx)
		})
}

// ByStudent returns one student's records through the cache.
func (s *Attendance) ByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("attendance.byStudent", studentID),
		[]string{cachetag.Attendances},
		func(ctx context.Context) ([]model.Attendance, error) {
			return s.store.ListAttendanceByStudent(ctx, studentID)
		})
}

// ByTeacher returns one teacher's records through the cache.
func (s *Attendance) ByTeacher(ctx context.Context, teacherID string) ([]model.Attendance, error) {
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("attendance.byTeacher", teacherID),
		[]string{cachetag.Attendances},
		func(ctx context.Context) ([]model.Attendance, error) {
			return s.store.ListAttendanceByTeacher(ctx, teacherID)
		})
}

// ByDate returns every record on the given UTC calendar day through the cache.
func (s *Attendance) ByDate(ctx context.Context, day time.Time) ([]model.Attendance, error) {
	day = day.UTC().Truncate(24 * time.Hour)
	return cache.GetOrFetch(ctx, s.cache,
		s.keys.SerializeKey("attendance.byDate", day),
		[]string{cachetag.Attendances},
		func(ctx context.Context) ([]model.Attendance, error) {
			return s.store.ListAttendanceByDate(ctx, day)
		})
}

// Create validates and inserts one record.
func (s *Attendance) Create(ctx context.Context, record *model.Attendance) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.store.CreateAttendance(ctx, record); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.AttendanceWrite, record.ID)
}

// CreateBulk validates and inserts a batch of records in one write, for
// marking a whole class at once. The batch is all-or-nothing at validation:
// one bad record rejects the lot before any write.
func (s *Attendance) CreateBulk(ctx context.Context, records []model.Attendance) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return err
		}
	}
	if err := s.store.CreateAttendances(ctx, records); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.AttendanceWrite, "")
}

// UpdateStatus changes only the status of one record.
func (s *Attendance) UpdateStatus(ctx context.Context, id string, status model.AttendanceStatus) error {
	if !status.Valid() {
		return validation.Errors{"status": validation.NewError(
			"validation_attendance_status", "unknown attendance status")}
	}
	if err := s.store.UpdateAttendanceStatus(ctx, id, status); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.AttendanceWrite, id)
}

// Delete removes one record.
func (s *Attendance) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAttendance(ctx, id); err != nil {
		return err
	}
	return invalidateAfter(ctx, s.cache, cachetag.AttendanceWrite, id)
}
