package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/constants"
	apperrors "github.com/Nikk8744/F-T-T-sub000/errors"
	"github.com/Nikk8744/F-T-T-sub000/models"
)

// EntityKind tags a DeadlineCandidate as a task or a project
type EntityKind string

const (
	KindTask    EntityKind = constants.EntityTask
	KindProject EntityKind = constants.EntityProject
)

// DeadlineCandidate is a task or project inside the approaching or missed window at scan time
type DeadlineCandidate struct {
	Kind          EntityKind
	EntityID      uint
	Title         string
	Due           time.Time
	OwnerID       uint
	IsApproaching bool
}

// ScanError aborts a whole scan cycle
type ScanError struct {
	Query string
	Err   error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Query, e.Err)
}

func (e *ScanError) Unwrap() []error {
	return []error{apperrors.ErrScanFailed, e.Err}
}

type DeadlineScanner struct {
	store    DeadlineStore
	location *time.Location
}

func NewDeadlineScanner(store DeadlineStore, loc *time.Location) *DeadlineScanner {
	if loc == nil {
		loc = time.UTC
	}
	return &DeadlineScanner{store: store, location: loc}
}

// StartOfDay truncates t to midnight in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// classify reports whether due is approaching (today, edge] or missed (< today).
// A due instant equal to today is neither.
func classify(due, today, edge time.Time) (approaching, ok bool) {
	switch {
	case due.After(today) && !due.After(edge):
		return true, true
	case due.Before(today):
		return false, true
	default:
		return false, false
	}
}

// Scan runs the approaching and missed queries for tasks and projects.
// Any storage error aborts the scan and no candidates are returned.
func (s *DeadlineScanner) Scan(ctx context.Context, now time.Time, warningDays int) ([]DeadlineCandidate, error) {
	if warningDays < 0 {
		warningDays = 0
	}
	today := StartOfDay(now, s.location)
	edge := today.AddDate(0, 0, warningDays)

	var candidates []DeadlineCandidate

	approachingTasks, err := s.store.ApproachingTasks(ctx, today, edge)
	if err != nil {
		return nil, &ScanError{Query: "approaching tasks", Err: err}
	}
	candidates = s.appendTasks(candidates, approachingTasks, today, edge, true)

	missedTasks, err := s.store.MissedTasks(ctx, today)
	if err != nil {
		return nil, &ScanError{Query: "missed tasks", Err: err}
	}
	candidates = s.appendTasks(candidates, missedTasks, today, edge, false)

	approachingProjects, err := s.store.ApproachingProjects(ctx, today, edge)
	if err != nil {
		return nil, &ScanError{Query: "approaching projects", Err: err}
	}
	candidates = s.appendProjects(candidates, approachingProjects, today, edge, true)

	missedProjects, err := s.store.MissedProjects(ctx, today)
	if err != nil {
		return nil, &ScanError{Query: "missed projects", Err: err}
	}
	candidates = s.appendProjects(candidates, missedProjects, today, edge, false)

	return candidates, nil
}

func (s *DeadlineScanner) appendTasks(out []DeadlineCandidate, tasks []models.Task, today, edge time.Time, wantApproaching bool) []DeadlineCandidate {
	for _, t := range tasks {
		if t.DueDate == nil || isTerminal(KindTask, t.Status) {
			continue
		}
		approaching, ok := classify(*t.DueDate, today, edge)
		if !ok || approaching != wantApproaching {
			continue
		}
		out = append(out, DeadlineCandidate{
			Kind:          KindTask,
			EntityID:      t.ID,
			Title:         t.Subject,
			Due:           t.DueDate.In(s.location),
			OwnerID:       t.OwnerID,
			IsApproaching: approaching,
		})
	}
	return out
}

func (s *DeadlineScanner) appendProjects(out []DeadlineCandidate, projects []models.Project, today, edge time.Time, wantApproaching bool) []DeadlineCandidate {
	for _, p := range projects {
		if p.EndDate == nil || isTerminal(KindProject, p.Status) {
			continue
		}
		approaching, ok := classify(*p.EndDate, today, edge)
		if !ok || approaching != wantApproaching {
			continue
		}
		out = append(out, DeadlineCandidate{
			Kind:          KindProject,
			EntityID:      p.ID,
			Title:         p.Name,
			Due:           p.EndDate.In(s.location),
			OwnerID:       p.OwnerID,
			IsApproaching: approaching,
		})
	}
	return out
}

func isTerminal(kind EntityKind, status string) bool {
	if kind == KindProject {
		return status == constants.ProjectStatusCompleted
	}
	return status == constants.TaskStatusDone
}
