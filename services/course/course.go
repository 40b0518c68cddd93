package course

import (
	"context"
	"errors"
	"strings"

	"unisched/database"
	courseRepo "unisched/database/repository/course"
	userRepo "unisched/database/repository/user"
	"unisched/models"
	"unisched/services/access"
	"unisched/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrCourseNotFound  = utils.NotFound("Course not found")
	ErrFacultyNotFound = utils.Invalid("Faculty does not exist")
	ErrDuplicateCode   = utils.Conflict("Course code already exists")
)

type CourseService interface {
	Create(ctx context.Context, actor models.Identity, in models.CourseInput) (*models.Course, error)
	List(ctx context.Context, actor models.Identity) ([]models.CourseView, error)
	Update(ctx context.Context, actor models.Identity, id string, in models.CourseUpdate) (*models.Course, error)
	Delete(ctx context.Context, actor models.Identity, id string) error
}

type DefaultCourseService struct {
	Repo   courseRepo.CourseRepository
	Users  userRepo.UserRepository
	logger *zap.Logger
}

func NewDefaultCourseService(repo courseRepo.CourseRepository, users userRepo.UserRepository, logger *zap.Logger) *DefaultCourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCourseService{Repo: repo, Users: users, logger: logger}
}

func (s *DefaultCourseService) Create(ctx context.Context, actor models.Identity, in models.CourseInput) (*models.Course, error) {
	if err := access.Authorize(actor, access.OpCourseCreate); err != nil {
		return nil, err
	}
	if err := s.checkFaculty(ctx, in.Faculty); err != nil {
		return nil, err
	}

	c := &models.Course{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.TrimSpace(in.Code),
		Description: in.Description,
		Credits:     in.Credits,
		FacultyID:   in.Faculty,
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to create course", err)
	}
	s.logger.Info("Course created", zap.String("courseId", c.ID), zap.String("code", c.Code))
	return c, nil
}

// List resolves each course's faculty. Admins get the full profile, everyone
// else only the username.
func (s *DefaultCourseService) List(ctx context.Context, actor models.Identity) ([]models.CourseView, error) {
	if err := access.Authorize(actor, access.OpCourseList); err != nil {
		return nil, err
	}
	courses, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load courses", err)
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.FacultyID)
	}
	faculty, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, "failed to load faculty", err)
	}

	out := make([]models.CourseView, 0, len(courses))
	for _, c := range courses {
		view := models.CourseView{Course: c}
		if u, ok := faculty[c.FacultyID]; ok {
			if actor.Role == models.RoleAdmin {
				u := u
				view.Faculty = &u
			} else {
				view.Faculty = &models.UserSummary{ID: u.ID, Username: u.Username}
			}
		}
		out = append(out, view)
	}
	return out, nil
}

// Update applies the non-empty fields of in.
func (s *DefaultCourseService) Update(ctx context.Context, actor models.Identity, id string, in models.CourseUpdate) (*models.Course, error) {
	if err := access.Authorize(actor, access.OpCourseUpdate); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	set := bson.M{}
	if v := strings.TrimSpace(in.Name); v != "" {
		set["name"] = v
	}
	if v := strings.TrimSpace(in.Code); v != "" {
		set["code"] = v
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Credits > 0 {
		set["credits"] = in.Credits
	}
	if in.Faculty != "" {
		if err := s.checkFaculty(ctx, in.Faculty); err != nil {
			return nil, err
		}
		set["facultyId"] = in.Faculty
	}

	c, err := s.Repo.UpdateFields(ctx, id, set)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, ErrCourseNotFound
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrDuplicateCode
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to update course", err)
	}
	return c, nil
}

func (s *DefaultCourseService) Delete(ctx context.Context, actor models.Identity, id string) error {
	if err := access.Authorize(actor, access.OpCourseDelete); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrCourseNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to delete course", err)
	}
	return nil
}

func (s *DefaultCourseService) load(ctx context.Context, id string) (*models.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, utils.Wrap(utils.KindInternal, "failed to load course", err)
	}
	return c, nil
}

func (s *DefaultCourseService) checkFaculty(ctx context.Context, id string) error {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrFacultyNotFound
		}
		return utils.Wrap(utils.KindInternal, "failed to look up faculty", err)
	}
	if !u.Role.IsStaff() {
		return ErrFacultyNotFound
	}
	return nil
}
