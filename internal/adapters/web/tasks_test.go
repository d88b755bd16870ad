package web

import (
	"testing"

	"reposter/internal/domain"
)

func TestTaskStore_Create_StartsPending(t *testing.T) {
	// Arrange
	ts := NewTaskStore()

	// Act
	id := ts.Create()
	task, ok := ts.Get(id)

	// Assert
	if !ok {
		t.Fatal("expected task to be retrievable")
	}
	if task.Status != domain.TaskPending {
		t.Errorf("status: got %v, want pending", task.Status)
	}
	if task.ID != id {
		t.Errorf("id: got %v, want %v", task.ID, id)
	}
}

func TestTaskStore_Progress_UpdatesStatusAndMessage(t *testing.T) {
	// Arrange
	ts := NewTaskStore()
	id := ts.Create()

	// Act
	ts.Progress(id, 60, "Organizing files...")
	task, _ := ts.Get(id)

	// Assert
	if task.Status != domain.TaskDownloading {
		t.Errorf("status: got %v, want downloading", task.Status)
	}
	if task.Progress != 60 || task.Message != "Organizing files..." {
		t.Errorf("progress: got %d %q", task.Progress, task.Message)
	}
}

func TestTaskStore_Complete_StoresResultAtFullProgress(t *testing.T) {
	// Arrange
	ts := NewTaskStore()
	id := ts.Create()
	result := &domain.DownloadResult{Folder: "/tmp/x", Message: "done"}

	// Act
	ts.Complete(id, result)
	task, _ := ts.Get(id)

	// Assert
	if task.Status != domain.TaskCompleted {
		t.Errorf("status: got %v, want completed", task.Status)
	}
	if task.Progress != 100 {
		t.Errorf("progress: got %d, want 100", task.Progress)
	}
	if task.Result == nil || task.Result.Folder != "/tmp/x" {
		t.Errorf("result: got %+v", task.Result)
	}
}

func TestTaskStore_Fail_RecordsError(t *testing.T) {
	// Arrange
	ts := NewTaskStore()
	id := ts.Create()

	// Act
	ts.Fail(id, "connection trouble")
	task, _ := ts.Get(id)

	// Assert
	if task.Status != domain.TaskFailed {
		t.Errorf("status: got %v, want failed", task.Status)
	}
	if task.Error != "connection trouble" {
		t.Errorf("error: got %q", task.Error)
	}
}

func TestTaskStore_Get_UnknownID_ReturnsFalse(t *testing.T) {
	// Arrange
	ts := NewTaskStore()

	// Act
	_, ok := ts.Get("nope")

	// Assert
	if ok {
		t.Error("expected unknown task to be missing")
	}
}
