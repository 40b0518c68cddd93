package enrollment

import (
	"context"
	"errors"
	"time"

	"unisched/database"
	courseRepo "unisched/database/repository/course"
	enrollmentRepo "unisched/database/repository/enrollment"
	userRepo "unisched/database/repository/user"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEnrollmentNotFound = utils.NotFound("Enrollment not found")
	ErrCourseNotFound     = utils.NotFound("Course not found")
	ErrStudentNotFound    = utils.Invalid("Student does not exist")
	ErrAlreadyEnrolled    = utils.Conflict("Student is already enrolled in this course")
)

type EnrollmentService interface {
	Enroll(ctx context.Context, actor models.Identity, in models.EnrollmentInput) (*models.Enrollment, error)
	Mine(ctx context.Context, actor models.Identity) ([]models.EnrollmentView, error)
	List(ctx context.Context, actor models.Identity) ([]models.EnrollmentView, error)
	Update(ctx context.Context, actor models.Identity, id string, in models.EnrollmentUpdate) (*models.Enrollment, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
	// StudentsOf returns the ids of students enrolled in a course.
	StudentsOf(ctx context.Context, courseID string) ([]string, error)
}

type DefaultEnrollmentService struct {
	Repo    enrollmentRepo.EnrollmentRepository
	Courses courseRepo.CourseRepository
	Users   userRepo.UserRepository
	logger  *zap.Logger
}

func NewDefaultEnrollmentService(repo enrollmentRepo.EnrollmentRepository, courses courseRepo.CourseRepository, users userRepo.UserRepository, logger *zap.Logger) *DefaultEnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultEnrollmentService{Repo: repo, Courses: courses, Users: users, logger: logger}
}

func (s *DefaultEnrollmentService) Enroll(ctx context.Context, actor models.Identity, in models.EnrollmentInput) (*models.Enrollment, error) {
	if err := access.Authorize(actor, access.OpEnrollSelf); err != nil {
		return nil, utils.Forbidden("Only Students can Enroll in a Course")
	}
	if err := s.checkCourse(ctx, in.Course); err != nil {
		return nil, err
	}

	e := &models.Enrollment{
		ID:        uuid.NewString(),
		StudentID: actor.UserID,
		CourseID:  in.Course,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to enroll", err)
	}
	return e, nil
}

func (s *DefaultEnrollmentService) Mine(ctx context.Context, actor models.Identity) ([]models.EnrollmentView, error) {
	if err := access.Authorize(actor, access.OpEnrollmentMine); err != nil {
		return nil, utils.Forbidden("You need to be a student to view enrollments")
	}
	list, err := s.Repo.GetByStudent(ctx, actor.UserID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load enrollments", err)
	}
	return s.views(ctx, list, false)
}

func (s *DefaultEnrollmentService) List(ctx context.Context, actor models.Identity) ([]models.EnrollmentView, error) {
	if err := access.Authorize(actor, access.OpEnrollmentList); err != nil {
		return nil, err
	}
	list, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load enrollments", err)
	}
	return s.views(ctx, list, true)
}

func (s *DefaultEnrollmentService) Update(ctx context.Context, actor models.Identity, id string, in models.EnrollmentUpdate) (*models.Enrollment, error) {
	if err := access.Authorize(actor, access.OpEnrollmentUpdate); err != nil {
		return nil, err
	}
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to load enrollment", err)
	}

	student, err := s.Users.GetByID(ctx, in.Student)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to look up student", err)
	}
	if student.Role != models.RoleStudent {
		return nil, ErrStudentNotFound
	}
	if err := s.checkCourse(ctx, in.Course); err != nil {
		return nil, err
	}

	e.StudentID = in.Student
	e.CourseID = in.Course
	if err := s.Repo.Update(ctx, e); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrAlreadyEnrolled
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrEnrollmentNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to update enrollment", err)
	}
	return e, nil
}

func (s *DefaultEnrollmentService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := access.Authorize(actor, access.OpEnrollmentDelete); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to delete enrollment", err)
	}
	return nil
}

func (s *DefaultEnrollmentService) StudentsOf(ctx context.Context, courseID string) ([]string, error) {
	list, err := s.Repo.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.StudentID)
	}
	return ids, nil
}

func (s *DefaultEnrollmentService) checkCourse(ctx context.Context, id string) error {
	if _, err := s.Courses.GetByID(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrCourseNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to look up course", err)
	}
	return nil
}

// views resolves course names, and student usernames when withStudent is set.
func (s *DefaultEnrollmentService) views(ctx context.Context, list []models.Enrollment, withStudent bool) ([]models.EnrollmentView, error) {
	courseIDs := make([]string, 0, len(list))
	studentIDs := make([]string, 0, len(list))
	for _, e := range list {
		courseIDs = append(courseIDs, e.CourseID)
		studentIDs = append(studentIDs, e.StudentID)
	}

	courses, err := s.Courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load courses", err)
	}
	var students map[string]models.User
	if withStudent {
		if students, err = s.Users.GetByIDs(ctx, studentIDs); err != nil {
			return nil, utils.Wrap(utils.KindInternal, "failed to load students", err)
		}
	}

	out := make([]models.EnrollmentView, 0, len(list))
	for _, e := range list {
		v := models.EnrollmentView{ID: e.ID, CreatedAt: e.CreatedAt}
		if c, ok := courses[e.CourseID]; ok {
			v.Course = &models.CourseSummary{ID: c.ID, Name: c.Name}
		}
		if u, ok := students[e.StudentID]; ok {
			v.Student = &models.UserSummary{ID: u.ID, Username: u.Username}
		}
		out = append(out, v)
	}
	return out, nil
}
