// Package views implements the derived-view computations the dashboard is
// built from: due-date classification, view filters, search and aggregate
// stats. Everything here is a pure function over a task slice; callers decide
// what "now" is.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/sunlighthq/tasks-service/internal/entity"
)

type View string

const (
	ViewDashboard View = "dashboard"
	ViewMyDay     View = "my-day"
	ViewImportant View = "important"
	ViewPlanned   View = "planned"
	ViewAllTasks  View = "all-tasks"
)

// Query is one view request: which primary filter to apply, an optional
// search term applied after it, and the reference time for "today".
type Query struct {
	View   View
	Search string
	Now    time.Time
}

// DaysUntilDue returns the whole-day distance between the due date and now's
// date: 0 when due today, 1 when due tomorrow, -(days late) when overdue.
// Time-of-day on either side is ignored. Both dates are rebuilt at UTC
// midnight so the difference is always an exact multiple of 24h.
func DaysUntilDue(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n) / (24 * time.Hour))
}

// IsToday reports whether date and now fall on the same calendar day.
func IsToday(date, now time.Time) bool {
	return date.Year() == now.Year() &&
		date.Month() == now.Month() &&
		date.Day() == now.Day()
}

// Apply runs the primary view filter, then the search filter, then sorts
// newest-created-first. The input slice is never mutated. An unknown view
// behaves like dashboard/all-tasks: no primary filter.
func Apply(tasks []entity.Task, q Query) []entity.Task {
	filtered := make([]entity.Task, 0, len(tasks))

	for _, t := range tasks {
		switch q.View {
		case ViewMyDay:
			if t.Completed || t.DueDate == nil || !IsToday(*t.DueDate, q.Now) {
				continue
			}
		case ViewImportant:
			if t.Completed || t.Priority != entity.PriorityHigh {
				continue
			}
		case ViewPlanned:
			if t.Completed || t.DueDate == nil {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		matched := filtered[:0]
		for _, t := range filtered {
			if matchesSearch(t, search) {
				matched = append(matched, t)
			}
		}
		filtered = matched
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return filtered
}

// case-insensitive substring match on text or description; a task with no
// description never matches on description
func matchesSearch(t entity.Task, search string) bool {
	if strings.Contains(strings.ToLower(t.Text), search) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), search) {
		return true
	}
	return false
}

type Stats struct {
	MyDay          int `json:"myDay"`
	Important      int `json:"important"`
	Planned        int `json:"planned"`
	AllTasks       int `json:"allTasks"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// ComputeStats derives the dashboard counters from the full collection.
// AllTasks counts only non-completed tasks; the name is kept for wire
// compatibility with the existing dashboard.
func ComputeStats(tasks []entity.Task, now time.Time) Stats {
	var s Stats

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.AllTasks++
		if t.Priority == entity.PriorityHigh {
			s.Important++
		}
		if t.DueDate != nil {
			s.Planned++
			if IsToday(*t.DueDate, now) {
				s.MyDay++
			}
			if DaysUntilDue(*t.DueDate, now) < 0 {
				s.Overdue++
			}
		}
	}

	if total := len(tasks); total > 0 {
		s.CompletionRate = int(float64(s.Completed)/float64(total)*100 + 0.5)
	}

	return s
}

// CountByCategory returns the number of non-completed tasks per category,
// feeding the sidebar badges. Every known category is present in the result,
// zero or not.
func CountByCategory(tasks []entity.Task) map[entity.Category]int {
	counts := make(map[entity.Category]int, len(entity.Categories))
	for _, c := range entity.Categories {
		counts[c] = 0
	}
	for _, t := range tasks {
		if !t.Completed {
			counts[t.Category]++
		}
	}
	return counts
}
