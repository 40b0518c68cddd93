package timetable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unisched/database"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTimetableNotFound = utils.NotFound("Timetable not found")
	ErrCourseNotFound    = utils.Invalid("Course not found")
	ErrFacultyNotFound   = utils.Invalid("Faculty not found")
)

func (s *DefaultTimetableService) Create(ctx context.Context, actor models.Identity, in models.TimetableInput) (*models.Timetable, error) {
	if err := access.Authorize(actor, access.OpTimetableCreate); err != nil {
		return nil, err
	}
	if _, err := s.Courses.GetByID(ctx, in.Course); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to look up course", err)
	}
	u, err := s.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to look up faculty", err)
	}
	if !u.Role.IsStaff() {
		return nil, ErrFacultyNotFound
	}

	entry := &models.Timetable{
		ID:        uuid.NewString(),
		CourseID:  in.Course,
		Date:      in.Date.UTC(),
		Time:      strings.TrimSpace(in.Time),
		FacultyID: actor.UserID,
		Location:  strings.TrimSpace(in.Location),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to create timetable entry", err)
	}
	return entry, nil
}

func (s *DefaultTimetableService) List(ctx context.Context, actor models.Identity, courseID string) ([]models.Timetable, error) {
	if err := access.Authorize(actor, access.OpTimetableList); err != nil {
		return nil, err
	}
	out, err := s.Repo.List(ctx, courseID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load timetable", err)
	}
	return out, nil
}

func (s *DefaultTimetableService) Update(ctx context.Context, actor models.Identity, id string, in models.TimetableUpdate) (*models.Timetable, error) {
	if err := access.Authorize(actor, access.OpTimetableUpdate); err != nil {
		return nil, err
	}
	entry, err := s.loadOwned(ctx, actor, id, "You are not authorized to update this Timetable")
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.Reschedule(ctx, id, in.Date.UTC(), strings.TrimSpace(in.Time), strings.TrimSpace(in.Location))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTimetableNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to update timetable entry", err)
	}

	if !updated.Date.Equal(entry.Date) || updated.Time != entry.Time || updated.Location != entry.Location {
		s.notifyStudents(ctx, actor, updated.CourseID, fmt.Sprintf(
			"Session moved to %s %s at %s", updated.Date.Format("2006-01-02"), updated.Time, updated.Location))
	}
	return updated, nil
}

func (s *DefaultTimetableService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := access.Authorize(actor, access.OpTimetableDelete); err != nil {
		return err
	}
	entry, err := s.loadOwned(ctx, actor, id, "You are not authorized to delete this Timetable")
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrTimetableNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to delete timetable entry", err)
	}

	s.notifyStudents(ctx, actor, entry.CourseID, fmt.Sprintf(
		"Session on %s %s at %s was cancelled", entry.Date.Format("2006-01-02"), entry.Time, entry.Location))
	return nil
}

func (s *DefaultTimetableService) loadOwned(ctx context.Context, actor models.Identity, id, denied string) (*models.Timetable, error) {
	entry, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrTimetableNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to load timetable entry", err)
	}
	if !access.CanEditTimetable(actor, entry) {
		return nil, utils.Forbidden(denied)
	}
	return entry, nil
}

// notifyStudents never fails the caller; the change is already persisted.
func (s *DefaultTimetableService) notifyStudents(ctx context.Context, actor models.Identity, courseID, message string) {
	if s.Notifier == nil || s.Roster == nil {
		return
	}
	students, err := s.Roster.StudentsOf(ctx, courseID)
	if err != nil {
		s.logger.Warn("Failed to load course roster", zap.String("courseId", courseID), zap.Error(err))
		return
	}
	if len(students) == 0 {
		return
	}
	s.Notifier.NotifyTimetableChange(ctx, actor.UserID, students, message)
}
