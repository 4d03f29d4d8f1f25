package console

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-school-admin/listview"
	"github.com/goliatone/go-school-admin/model"
	"github.com/goliatone/go-school-admin/store"
)

func TestNoticeCreateValidatesTarget(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	bad := &model.Notice{Title: "Mixed up", Content: "x", Priority: model.PriorityNormal}
	bad.TargetType = model.TargetRole
	bad.TargetRole = model.RoleTeacher
	bad.TargetUserID = "u1" // contradicts the role target

	if err := c.notices.Create(ctx, bad); !store.IsValidation(err) {
		t.Errorf("Create() with conflicting target = %v, want validation error", err)
	}

	good := &model.Notice{Title: "Staff meeting", Content: "Friday 3pm.", Priority: model.PriorityHigh}
	good.SetTarget(model.TargetByRole(model.RoleTeacher))
	if err := c.notices.Create(ctx, good); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
}

func TestNoticeCreatePublishedStampsTimestamp(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	notice := &model.Notice{Title: "Welcome", Content: "Term begins.", Priority: model.PriorityNormal, IsPublished: true}
	notice.SetTarget(model.TargetEveryone())

	if err := c.notices.Create(ctx, notice); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if notice.PublishedAt == nil {
		t.Fatal("published notice created without PublishedAt")
	}
	if time.Since(*notice.PublishedAt) > time.Minute {
		t.Errorf("PublishedAt = %v, want roughly now", notice.PublishedAt)
	}
}

func TestTogglePublish(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	draft := &model.Notice{Title: "Exam window", Content: "Midterms soon.", Priority: model.PriorityUrgent}
	draft.SetTarget(model.TargetByRole(model.RoleStudent))
	if err := c.notices.Create(ctx, draft); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	published, err := c.notices.TogglePublish(ctx, draft.ID)
	if err != nil {
		t.Fatalf("TogglePublish() failed: %v", err)
	}
	if !published.IsPublished || published.PublishedAt == nil {
		t.Fatalf("toggle gave %v/%v, want published with timestamp", published.IsPublished, published.PublishedAt)
	}
	if time.Since(*published.PublishedAt) > time.Minute {
		t.Errorf("PublishedAt = %v, want roughly now", published.PublishedAt)
	}

	unpublished, err := c.notices.TogglePublish(ctx, draft.ID)
	if err != nil {
		t.Fatalf("second TogglePublish() failed: %v", err)
	}
	if unpublished.IsPublished || unpublished.PublishedAt != nil {
		t.Errorf("second toggle gave %v/%v, want draft with no timestamp", unpublished.IsPublished, unpublished.PublishedAt)
	}

	// The cached list reflects the final state.
	notices, err := c.notices.All(ctx)
	if err != nil {
		t.Fatalf("notices.All() failed: %v", err)
	}
	if len(notices) != 1 || notices[0].IsPublished {
		t.Errorf("notices.All() = %+v, want one draft", notices)
	}

	if _, err := c.notices.TogglePublish(ctx, "no-such-notice"); !store.IsNotFound(err) {
		t.Errorf("TogglePublish(missing) = %v, want not found", err)
	}
}

func TestNoticeViewJoinsAndFilters(t *testing.T) {
	c := newTestConsole(t)
	ctx := context.Background()

	user := c.createUser(t, "Ada Lovelace", "ada@example.com", model.RoleAdmin, "Greenwood")

	direct := &model.Notice{Title: "Locker renewal", Content: "Expires soon.", Priority: model.PriorityLow}
	direct.SetTarget(model.TargetByUser(user.ID))
	if err := c.notices.Create(ctx, direct); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	broadcast := &model.Notice{Title: "Holiday schedule", Content: "Closed Friday.", Priority: model.PriorityNormal, IsPublished: true}
	broadcast.SetTarget(model.TargetEveryone())
	if err := c.notices.Create(ctx, broadcast); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	view, err := c.notices.View(ctx, listview.NoticeFilter{Target: "user"})
	if err != nil {
		t.Fatalf("notices.View() failed: %v", err)
	}
	if view.Shown != 1 || view.Total != 2 {
		t.Errorf("view shows %d of %d, want 1 of 2", view.Shown, view.Total)
	}
	if target := view.Notices[0].TargetUser; target == nil || target.Name != "Ada Lovelace" {
		t.Errorf("target user not joined: %+v", view.Notices[0].TargetUser)
	}
	if view.Stats.Total != 2 || view.Stats.Published != 1 || view.Stats.Draft != 1 {
		t.Errorf("stats = %+v, want unfiltered totals", view.Stats)
	}
}
