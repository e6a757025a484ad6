package update

import (
	"testing"

	"github.com/sandeepkv93/taskpager/internal/model"
	"github.com/sandeepkv93/taskpager/internal/testutil"
)

func loadedStore(n, total int) TaskStore {
	s := NewTaskStore(0)
	s.ApplyPage(1, model.Page{Tasks: testutil.SampleTasks(n), Total: total})
	return s
}

func TestNewTaskStoreDefaults(t *testing.T) {
	s := NewTaskStore(0)
	if s.Page != 1 || s.PageSize != model.DefaultPageSize || s.PageCount() != 1 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestSetPageClamps(t *testing.T) {
	s := loadedStore(5, 23)
	if s.SetPage(1) {
		t.Fatal("expected no change for current page")
	}
	if !s.SetPage(10) || s.Page != 5 {
		t.Fatalf("expected clamp to page 5, got %d", s.Page)
	}
	if !s.SetPage(-2) || s.Page != 1 {
		t.Fatalf("expected clamp to page 1, got %d", s.Page)
	}
}

func TestApplyPageIgnoresStaleResult(t *testing.T) {
	s := loadedStore(5, 20)
	if s.ApplyPage(2, model.Page{Total: 99}) {
		t.Fatal("expected stale page to be rejected")
	}
	if s.Total != 20 || len(s.Tasks) != 5 {
		t.Fatalf("store changed by stale page: %+v", s)
	}
}

func TestApplyCreatedPrepends(t *testing.T) {
	s := loadedStore(5, 20)
	s.ApplyCreated(model.Task{ID: 201, Title: "new", Priority: model.PriorityLow, DueDate: "2024-06-01"})
	if s.Tasks[0].ID != 201 || s.Total != 21 {
		t.Fatalf("expected prepend and total 21, got first=%d total=%d", s.Tasks[0].ID, s.Total)
	}
	if len(s.Tasks) != 6 || len(s.Visible()) != 5 {
		t.Fatalf("expected 6 held and 5 visible, got %d/%d", len(s.Tasks), len(s.Visible()))
	}
}

func TestApplyUpdatedMergesAndEndsEdit(t *testing.T) {
	s := loadedStore(5, 5)
	s.BeginEdit(s.Tasks[2])
	done := true
	if !s.ApplyUpdated(3, model.TaskPatch{Status: &done}) {
		t.Fatal("expected task 3 to be found")
	}
	got, _ := s.Find(3)
	if !got.Status || got.Title != "task 3" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
	if s.Editing != nil {
		t.Fatal("expected edit to end")
	}

	s.BeginEdit(s.Tasks[0])
	if s.ApplyUpdated(42, model.TaskPatch{Status: &done}) {
		t.Fatal("expected unknown id to report not found")
	}
	if s.Editing == nil || s.Editing.ID != 1 {
		t.Fatal("expected unrelated update to keep the edit")
	}
}

func TestBeginEditTakesSnapshot(t *testing.T) {
	s := loadedStore(2, 2)
	s.BeginEdit(s.Tasks[0])
	s.Tasks[0].Title = "mutated"
	if s.Editing.Title != "task 1" {
		t.Fatalf("expected snapshot title, got %q", s.Editing.Title)
	}
	s.CancelEdit()
	if s.Editing != nil {
		t.Fatal("expected edit cancelled")
	}
}

func TestApplyDeleted(t *testing.T) {
	s := loadedStore(5, 20)
	if !s.ApplyDeleted(4) || s.Total != 19 {
		t.Fatalf("expected removal and total 19, got total=%d", s.Total)
	}
	if _, ok := s.Find(4); ok {
		t.Fatal("task 4 still present")
	}
	if s.ApplyDeleted(4) || s.Total != 19 {
		t.Fatalf("expected second delete to be a no-op, got total=%d", s.Total)
	}
}

func TestApplyDeletedClampsPage(t *testing.T) {
	s := NewTaskStore(0)
	s.Total = 11
	s.SetPage(3)
	s.ApplyPage(3, model.Page{Tasks: []model.Task{{ID: 11}}, Total: 11})

	s.ApplyDeleted(11)
	if s.Total != 10 || s.Page != 2 {
		t.Fatalf("expected total 10 on page 2, got total=%d page=%d", s.Total, s.Page)
	}
}

func TestRestorePage(t *testing.T) {
	s := loadedStore(5, 20)
	s.SetPage(3)
	s.RestorePage(1)
	if s.Page != 1 || len(s.Tasks) != 5 {
		t.Fatalf("expected page 1 with rows kept, got page=%d rows=%d", s.Page, len(s.Tasks))
	}
}
