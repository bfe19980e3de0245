// Package planner exposes the to-do planner's observable boundary: a
// plain-text export whose field order and separators are part of the
// contract consumed by external tooling.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ananya/saathi/internal/db"
)

// ErrEmptyTitle rejects planner items with a blank title.
var ErrEmptyTitle = errors.New("planner item title must not be empty")

const separatorRule = "----------------------------------------" // 40 dashes

// notesIndent aligns continuation lines under the first notes line.
var notesIndent = strings.Repeat(" ", len("Notes: "))

type Service struct {
	db *db.DB
}

func NewService(database *db.DB) *Service {
	return &Service{db: database}
}

func (s *Service) Create(title, date, timeOfDay, notes string) (*db.PlannerItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	id, err := s.db.CreatePlannerItem(title, date, timeOfDay, notes)
	if err != nil {
		return nil, err
	}
	items, err := s.db.ListPlannerItems()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("planner item %d not found after create", id)
}

func (s *Service) List() ([]db.PlannerItem, error) {
	return s.db.ListPlannerItems()
}

func (s *Service) Complete(id int64) (bool, error) {
	return s.db.CompletePlannerItem(id)
}

func (s *Service) Delete(id int64) (bool, error) {
	return s.db.DeletePlannerItem(id)
}

// Export renders every planner item in the plain-text exchange format:
// labeled fields in fixed order, multi-line notes indented on
// continuation lines, blocks separated by a 40-character dash rule.
func (s *Service) Export() (string, error) {
	items, err := s.db.ListPlannerItems()
	if err != nil {
		return "", err
	}
	return Render(items), nil
}

// Render formats items without touching storage.
func Render(items []db.PlannerItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, renderItem(item))
	}
	return strings.Join(blocks, separatorRule+"\n")
}

func renderItem(item db.PlannerItem) string {
	status := "Pending"
	if item.Completed {
		status = "Completed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", item.Title)
	fmt.Fprintf(&b, "Date: %s\n", item.Date)
	fmt.Fprintf(&b, "Time: %s\n", item.Time)
	fmt.Fprintf(&b, "Notes: %s\n", indentNotes(item.Notes))
	fmt.Fprintf(&b, "Status: %s\n", status)
	return b.String()
}

func indentNotes(notes string) string {
	lines := strings.Split(notes, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = notesIndent + lines[i]
	}
	return strings.Join(lines, "\n")
}
