package timetable

import (
	"context"
	"io"

	courseRepo "unisched/database/repository/course"
	timetableRepo "unisched/database/repository/timetable"
	userRepo "unisched/database/repository/user"
	"unisched/models"

	"go.uber.org/zap"
)

type TimetableService interface {
	Create(ctx context.Context, actor models.Identity, in models.TimetableInput) (*models.Timetable, error)
	List(ctx context.Context, actor models.Identity, courseID string) ([]models.Timetable, error)
	Update(ctx context.Context, actor models.Identity, id string, in models.TimetableUpdate) (*models.Timetable, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
	// Export writes the timetable, optionally filtered by course, as an XLSX workbook.
	Export(ctx context.Context, actor models.Identity, courseID string, w io.Writer) error
}

// Roster lists the students enrolled in a course.
type Roster interface {
	StudentsOf(ctx context.Context, courseID string) ([]string, error)
}

// ChangeNotifier is told when an entry enrolled students rely on changes.
type ChangeNotifier interface {
	NotifyTimetableChange(ctx context.Context, senderID string, receiverIDs []string, message string)
}

type DefaultTimetableService struct {
	Repo     timetableRepo.TimetableRepository
	Courses  courseRepo.CourseRepository
	Users    userRepo.UserRepository
	Roster   Roster
	Notifier ChangeNotifier
	logger   *zap.Logger
}

func NewDefaultTimetableService(
	repo timetableRepo.TimetableRepository,
	courses courseRepo.CourseRepository,
	users userRepo.UserRepository,
	roster Roster,
	notifier ChangeNotifier,
	logger *zap.Logger,
) *DefaultTimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTimetableService{
		Repo:     repo,
		Courses:  courses,
		Users:    users,
		Roster:   roster,
		Notifier: notifier,
		logger:   logger,
	}
}
