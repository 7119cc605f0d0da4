package schedule

import (
	"testing"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

func TestSessionsOnMatchesDateOnly(t *testing.T) {
	groups := []*domain.Group{
		{
			ID:       1,
			Name:     "Frontend Bootcamp",
			Category: domain.CategoryFrontend,
			Level:    2,
			Seats:    12,
			Sessions: []domain.GroupSession{
				{Day: "monday", Time: "18:00", SessionDate: "2024-01-08", Feedback: domain.FeedbackUpcoming},
				{Day: "wednesday", Time: "18:00", SessionDate: "2024-01-10", Feedback: domain.FeedbackUpcoming},
			},
		},
		{
			ID:       2,
			Name:     "Backend Basics",
			Category: domain.CategoryBackend,
			Level:    1,
			Seats:    8,
			Sessions: []domain.GroupSession{
				// 历史数据中带时间部分的日期也按天匹配
				{Day: "monday", Time: "20:00", SessionDate: "2024-01-08T20:00:00Z", Feedback: domain.FeedbackDone},
			},
		},
	}

	views := SessionsOn(date(t, "2024-01-08"), groups)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}

	if views[0].GroupName != "Frontend Bootcamp" || views[0].Time != "18:00" {
		t.Errorf("first view = %+v", views[0])
	}
	if views[1].GroupID != 2 || views[1].Feedback != domain.FeedbackDone {
		t.Errorf("second view = %+v", views[1])
	}
}

func TestSessionsOnExcludesFinishedAndPaused(t *testing.T) {
	session := domain.GroupSession{Day: "monday", Time: "18:00", SessionDate: "2024-01-08"}

	groups := []*domain.Group{
		{ID: 1, Name: "active", Sessions: []domain.GroupSession{session}},
		{ID: 2, Name: "finished", IsFinished: true, Sessions: []domain.GroupSession{session}},
		{ID: 3, Name: "paused", Paused: true, Sessions: []domain.GroupSession{session}},
	}

	views := SessionsOn(date(t, "2024-01-08"), groups)
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].GroupID != 1 {
		t.Errorf("view group = %d, want 1", views[0].GroupID)
	}
}

func TestSessionsOnEmptyResult(t *testing.T) {
	groups := []*domain.Group{
		{ID: 1, Sessions: []domain.GroupSession{{Day: "monday", Time: "18:00", SessionDate: "2024-01-08"}}},
	}

	views := SessionsOn(date(t, "2024-01-09"), groups)
	if views == nil {
		t.Fatal("SessionsOn returned nil, want empty slice")
	}
	if len(views) != 0 {
		t.Errorf("got %d views, want 0", len(views))
	}
}

func TestSessionsOnSkipsUnboundAndMalformedDates(t *testing.T) {
	groups := []*domain.Group{
		{
			ID: 1,
			Sessions: []domain.GroupSession{
				{Day: "monday", Time: "18:00", SessionDate: ""},
				{Day: "monday", Time: "19:00", SessionDate: "garbage"},
				{Day: "monday", Time: "20:00", SessionDate: "2024-01-08"},
			},
		},
	}

	views := SessionsOn(date(t, "2024-01-08"), groups)
	if len(views) != 1 || views[0].Time != "20:00" {
		t.Errorf("views = %+v, want only the 20:00 session", views)
	}
}
