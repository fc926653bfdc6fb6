package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

func TestCreateTaskRequestValidate(t *testing.T) {
	req := &CreateTaskRequest{Text: "  water the plants  "}

	if err := req.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Text != "water the plants" {
		t.Errorf("text not trimmed: %q", req.Text)
	}
	if req.Priority != PriorityMedium {
		t.Errorf("priority default = %q, want medium", req.Priority)
	}
	if req.Category != CategoryPersonal {
		t.Errorf("category default = %q, want personal", req.Category)
	}
}

func TestCreateTaskRequestValidateRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		req := &CreateTaskRequest{Text: text}
		if err := req.Validate(); err != ErrInvalidTaskData {
			t.Errorf("text %q: expected ErrInvalidTaskData, got %v", text, err)
		}
	}
}

func TestCreateTaskRequestValidateRejectsUnknownEnums(t *testing.T) {
	req := &CreateTaskRequest{Text: "x", Priority: "urgent"}
	if err := req.Validate(); err != ErrInvalidTaskData {
		t.Errorf("unknown priority: expected ErrInvalidTaskData, got %v", err)
	}

	req = &CreateTaskRequest{Text: "x", Category: "chores"}
	if err := req.Validate(); err != ErrInvalidTaskData {
		t.Errorf("unknown category: expected ErrInvalidTaskData, got %v", err)
	}
}

func TestCreateTaskRequestValidateNormalizesDescription(t *testing.T) {
	req := &CreateTaskRequest{Text: "x", Description: strPtr("  details  ")}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Description == nil || *req.Description != "details" {
		t.Errorf("description = %v, want %q", req.Description, "details")
	}

	req = &CreateTaskRequest{Text: "x", Description: strPtr("   ")}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Description != nil {
		t.Errorf("blank description should normalize to nil, got %q", *req.Description)
	}
}

func TestUpdateTaskRequestUnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	var absent UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"text":"hi"}`), &absent); err != nil {
		t.Fatal(err)
	}
	if absent.DueDateNull || absent.DueDate != nil {
		t.Error("absent dueDate must be neither set nor null")
	}

	var null UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &null); err != nil {
		t.Fatal(err)
	}
	if !null.DueDateNull || null.DueDate != nil {
		t.Error("explicit null dueDate must set DueDateNull")
	}

	var set UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"dueDate":"2024-03-01T00:00:00Z"}`), &set); err != nil {
		t.Fatal(err)
	}
	if set.DueDate == nil || !set.DueDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dueDate = %v, want 2024-03-01", set.DueDate)
	}
}

func TestUpdateTaskRequestIgnoresImmutableFields(t *testing.T) {
	var req UpdateTaskRequest
	body := `{"id":"evil","ownerId":"someone-else","createdAt":"2020-01-01T00:00:00Z","completed":true}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}

	updates := req.Updates()
	if len(updates) != 1 {
		t.Fatalf("updates = %v, want only completed", updates)
	}
	if updates["completed"] != true {
		t.Errorf("completed = %v, want true", updates["completed"])
	}
}

func TestUpdateTaskRequestValidate(t *testing.T) {
	req := &UpdateTaskRequest{Text: strPtr("   ")}
	if err := req.Validate(); err != ErrInvalidTaskData {
		t.Errorf("blank text patch: expected ErrInvalidTaskData, got %v", err)
	}

	bad := Priority("asap")
	req = &UpdateTaskRequest{Priority: &bad}
	if err := req.Validate(); err != ErrInvalidTaskData {
		t.Errorf("unknown priority patch: expected ErrInvalidTaskData, got %v", err)
	}

	// empty patch is fine
	req = &UpdateTaskRequest{}
	if err := req.Validate(); err != nil {
		t.Errorf("empty patch: expected no error, got %v", err)
	}
	if len(req.Updates()) != 0 {
		t.Errorf("empty patch should produce no updates, got %v", req.Updates())
	}
}

func TestUpdateTaskRequestBlankDescriptionClears(t *testing.T) {
	req := &UpdateTaskRequest{Description: strPtr("  ")}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}

	updates := req.Updates()
	v, ok := updates["description"]
	if !ok || v != nil {
		t.Errorf("blank description patch should clear the column, got %v", updates)
	}
}

func TestUpdateTaskRequestNullClearsDueDate(t *testing.T) {
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"dueDate":null}`), &req); err != nil {
		t.Fatal(err)
	}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}

	updates := req.Updates()
	v, ok := updates["due_date"]
	if !ok || v != nil {
		t.Errorf("null dueDate patch should clear the column, got %v", updates)
	}
}
