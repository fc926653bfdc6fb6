package entity

import (
	"encoding/json"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Category string

const (
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryEducation Category = "education"
	CategoryFinance   Category = "finance"
	CategoryHobby     Category = "hobby"
	CategoryTravel    Category = "travel"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth,
		CategoryEducation, CategoryFinance, CategoryHobby, CategoryTravel:
		return true
	}
	return false
}

// Categories lists every known category, in display order.
var Categories = []Category{
	CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth,
	CategoryEducation, CategoryFinance, CategoryHobby, CategoryTravel,
}

type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Category    Category   `json:"category"`
	Description *string    `json:"description"`
	OwnerID     string     `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Text        string     `json:"text"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Category    Category   `json:"category"`
	Description *string    `json:"description"`
}

// Validate normalizes the request in place and rejects anything the store
// must never see: blank text, unknown priority or category. Runs before any
// persistence call.
func (r *CreateTaskRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return ErrInvalidTaskData
	}

	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !r.Priority.Valid() {
		return ErrInvalidTaskData
	}

	if r.Category == "" {
		r.Category = CategoryPersonal
	}
	if !r.Category.Valid() {
		return ErrInvalidTaskData
	}

	r.Description = normalizeDescription(r.Description)
	return nil
}

// UpdateTaskRequest is a partial patch. A nil pointer means the field was not
// in the body. DueDateNull / DescriptionNull record an explicit JSON null,
// which clears the field. id, ownerId and createdAt have no representation
// here at all, so a patch can never touch them.
type UpdateTaskRequest struct {
	Text        *string
	Completed   *bool
	Priority    *Priority
	Category    *Category
	DueDate     *time.Time
	Description *string

	DueDateNull     bool
	DescriptionNull bool
}

func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["text"]; ok {
		if err := json.Unmarshal(v, &r.Text); err != nil {
			return err
		}
	}
	if v, ok := raw["completed"]; ok {
		if err := json.Unmarshal(v, &r.Completed); err != nil {
			return err
		}
	}
	if v, ok := raw["priority"]; ok {
		if err := json.Unmarshal(v, &r.Priority); err != nil {
			return err
		}
	}
	if v, ok := raw["category"]; ok {
		if err := json.Unmarshal(v, &r.Category); err != nil {
			return err
		}
	}
	if v, ok := raw["dueDate"]; ok {
		if string(v) == "null" {
			r.DueDateNull = true
		} else if err := json.Unmarshal(v, &r.DueDate); err != nil {
			return err
		}
	}
	if v, ok := raw["description"]; ok {
		if string(v) == "null" {
			r.DescriptionNull = true
		} else if err := json.Unmarshal(v, &r.Description); err != nil {
			return err
		}
	}
	return nil
}

// Validate applies the same per-field rules as CreateTaskRequest.Validate,
// but only to the fields present in the patch. An empty patch is valid.
func (r *UpdateTaskRequest) Validate() error {
	if r.Text != nil {
		text := strings.TrimSpace(*r.Text)
		if text == "" {
			return ErrInvalidTaskData
		}
		r.Text = &text
	}
	if r.Priority != nil && !r.Priority.Valid() {
		return ErrInvalidTaskData
	}
	if r.Category != nil && !r.Category.Valid() {
		return ErrInvalidTaskData
	}
	if r.Description != nil {
		r.Description = normalizeDescription(r.Description)
		if r.Description == nil {
			r.DescriptionNull = true
		}
	}
	return nil
}

// Updates flattens the patch into the column map the repository expects.
// nil values become SQL NULL.
func (r *UpdateTaskRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.Text != nil {
		updates["text"] = *r.Text
	}
	if r.Completed != nil {
		updates["completed"] = *r.Completed
	}
	if r.Priority != nil {
		updates["priority"] = string(*r.Priority)
	}
	if r.Category != nil {
		updates["category"] = string(*r.Category)
	}
	if r.DueDate != nil {
		updates["due_date"] = *r.DueDate
	} else if r.DueDateNull {
		updates["due_date"] = nil
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	} else if r.DescriptionNull {
		updates["description"] = nil
	}

	return updates
}

// blank descriptions are stored as NULL, never as ""
func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
