package model

import (
	"testing"
	"time"
)

func TestNoticeTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  NoticeTarget
		wantErr bool
	}{
		{"everyone", TargetEveryone(), false},
		{"by role", TargetByRole(RoleTeacher), false},
		{"by user", TargetByUser("user-1"), false},
		{"by institution", TargetByInstitution("inst-1"), false},
		{"all with role leaks", NoticeTarget{Type: TargetAll, Role: RoleAdmin}, true},
		{"role without role", NoticeTarget{Type: TargetRole}, true},
		{"role with user id", NoticeTarget{Type: TargetRole, Role: RoleAdmin, UserID: "u"}, true},
		{"user without id", NoticeTarget{Type: TargetUser}, true},
		{"institution without id", NoticeTarget{Type: TargetInstitution}, true},
		{"unknown type", NoticeTarget{Type: "everyone"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoticeTargetRoundTrip(t *testing.T) {
	var n Notice
	n.SetTarget(TargetByRole(RoleStudent))

	got := n.Target()
	if got.Type != TargetRole || got.Role != RoleStudent {
		t.Errorf("Target() = %+v, want role target for STUDENT", got)
	}
	if got.UserID != "" || got.InstitutionID != "" {
		t.Errorf("Target() leaked ids: %+v", got)
	}
}

func TestNoticeValidatePublishPairing(t *testing.T) {
	now := time.Now()

	base := Notice{
		Title:    "Term dates",
		Content:  "Term starts Monday",
		Priority: PriorityNormal,
	}
	base.SetTarget(TargetEveryone())

	t.Run("draft without publishedAt is valid", func(t *testing.T) {
		n := base
		if err := n.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("published without publishedAt is invalid", func(t *testing.T) {
		n := base
		n.IsPublished = true
		if err := n.Validate(); err == nil {
			t.Error("Validate() = nil, want pairing error")
		}
	})

	t.Run("draft with publishedAt is invalid", func(t *testing.T) {
		n := base
		n.PublishedAt = &now
		if err := n.Validate(); err == nil {
			t.Error("Validate() = nil, want pairing error")
		}
	})
}

func TestSubscriptionValidatePaidAtPairing(t *testing.T) {
	now := time.Now()
	base := Subscription{
		InstitutionID: "inst-1",
		PlanID:        "plan-1",
		Amount:        99,
		BillingCycle:  BillingMonthly,
		StartDate:     now,
		EndDate:       now.AddDate(0, 1, 0),
		PaymentStatus: PaymentDue,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	paid := base
	paid.PaymentStatus = PaymentPaid
	if err := paid.Validate(); err == nil {
		t.Error("paid without paidAt should be invalid")
	}
	paid.PaidAt = &now
	if err := paid.Validate(); err != nil {
		t.Errorf("paid with paidAt should be valid, got %v", err)
	}

	due := base
	due.PaidAt = &now
	if err := due.Validate(); err == nil {
		t.Error("due with paidAt should be invalid")
	}
}

func TestAttendanceValidateSubject(t *testing.T) {
	base := Attendance{Date: time.Now(), Status: AttendancePresent}

	if err := base.Validate(); err == nil {
		t.Error("attendance without subject should be invalid")
	}

	student := base
	student.StudentID = "u-1"
	if err := student.Validate(); err != nil {
		t.Errorf("student attendance should be valid, got %v", err)
	}

	both := student
	both.TeacherID = "u-2"
	if err := both.Validate(); err == nil {
		t.Error("attendance with both subjects should be invalid")
	}
}

func TestFeatureListScanValue(t *testing.T) {
	features := FeatureList{"attendance", "notices", "billing"}

	v, err := features.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	var got FeatureList
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if len(got) != len(features) {
		t.Fatalf("round trip changed length: got %d, want %d", len(got), len(features))
	}
	for i := range features {
		if got[i] != features[i] {
			t.Errorf("feature %d = %q, want %q", i, got[i], features[i])
		}
	}

	var empty FeatureList
	v, err = empty.Value()
	if err != nil {
		t.Fatalf("Value() on nil failed: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil list Value() = %v, want %q", v, "[]")
	}
}
