package timetable

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"unisched/database"
	"unisched/models"
	"unisched/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type memEntries struct {
	mu    sync.Mutex
	items map[string]models.Timetable
}

func (m *memEntries) Create(_ context.Context, e *models.Timetable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = *e
	return nil
}
func (m *memEntries) GetByID(_ context.Context, id string) (*models.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &e, nil
}
func (m *memEntries) List(_ context.Context, courseID string) ([]models.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Timetable{}
	for _, e := range m.items {
		if courseID == "" || e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (m *memEntries) Reschedule(_ context.Context, id string, date time.Time, slot, location string) (*models.Timetable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	e.Date, e.Time, e.Location = date, slot, location
	m.items[id] = e
	return &e, nil
}
func (m *memEntries) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memCourses struct{ items map[string]models.Course }

func (m *memCourses) Create(context.Context, *models.Course) error { return nil }
func (m *memCourses) GetByID(_ context.Context, id string) (*models.Course, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &c, nil
}
func (m *memCourses) GetAll(context.Context) ([]models.Course, error) { return nil, nil }
func (m *memCourses) GetByIDs(_ context.Context, ids []string) (map[string]models.Course, error) {
	out := map[string]models.Course{}
	for _, id := range ids {
		if c, ok := m.items[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}
func (m *memCourses) UpdateFields(context.Context, string, bson.M) (*models.Course, error) {
	return nil, database.ErrNotFound
}
func (m *memCourses) Delete(context.Context, string) error { return nil }

type memUsers struct{ items map[string]models.User }

func (m *memUsers) Create(context.Context, *models.User) error { return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}
func (m *memUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, database.ErrNotFound
}
func (m *memUsers) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, nil
}
func (m *memUsers) GetByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := m.items[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type staticRoster map[string][]string

func (r staticRoster) StudentsOf(_ context.Context, courseID string) ([]string, error) {
	return r[courseID], nil
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyTimetableChange(ctx context.Context, senderID string, receiverIDs []string, message string) {
	m.Called(ctx, senderID, receiverIDs, message)
}

var (
	admin   = models.Identity{UserID: "a1", Role: models.RoleAdmin}
	owner   = models.Identity{UserID: "f1", Role: models.RoleFaculty}
	other   = models.Identity{UserID: "f2", Role: models.RoleFaculty}
	student = models.Identity{UserID: "s1", Role: models.RoleStudent}
)

func newService(n ChangeNotifier) *DefaultTimetableService {
	return NewDefaultTimetableService(
		&memEntries{items: map[string]models.Timetable{}},
		&memCourses{items: map[string]models.Course{"c1": {ID: "c1", Code: "CS101", Name: "Intro"}}},
		&memUsers{items: map[string]models.User{
			"a1": {ID: "a1", Username: "root", Role: models.RoleAdmin},
			"f1": {ID: "f1", Username: "hopper", Role: models.RoleFaculty},
			"f2": {ID: "f2", Username: "dijkstra", Role: models.RoleFaculty},
		}},
		staticRoster{"c1": {"s1", "s2"}},
		n,
		nil,
	)
}

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestCreateTimetable(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, student, models.TimetableInput{Course: "c1", Date: monday, Time: "09:00-10:30", Location: "B-101"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Create(ctx, owner, models.TimetableInput{Course: "nope", Date: monday, Time: "09:00-10:30", Location: "B-101"})
	assert.ErrorIs(t, err, ErrCourseNotFound)

	entry, err := svc.Create(ctx, owner, models.TimetableInput{Course: "c1", Date: monday, Time: " 09:00-10:30 ", Location: "B-101"})
	require.NoError(t, err)
	assert.Equal(t, "f1", entry.FacultyID)
	assert.Equal(t, "09:00-10:30", entry.Time)

	list, err := svc.List(ctx, student, "c1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdateAndDeleteRespectOwnership(t *testing.T) {
	n := &mockNotifier{}
	svc := newService(n)
	ctx := context.Background()

	entry, err := svc.Create(ctx, owner, models.TimetableInput{Course: "c1", Date: monday, Time: "09:00-10:30", Location: "B-101"})
	require.NoError(t, err)

	upd := models.TimetableUpdate{Date: monday.AddDate(0, 0, 1), Time: "11:00-12:30", Location: "Lab 2"}
	_, err = svc.Update(ctx, other, entry.ID, upd)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	n.On("NotifyTimetableChange", mock.Anything, "f1", []string{"s1", "s2"}, mock.AnythingOfType("string")).Once()
	updated, err := svc.Update(ctx, owner, entry.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Lab 2", updated.Location)

	assert.ErrorIs(t, svc.Delete(ctx, other, entry.ID), utils.ErrForbidden)

	n.On("NotifyTimetableChange", mock.Anything, "a1", []string{"s1", "s2"}, mock.AnythingOfType("string")).Once()
	require.NoError(t, svc.Delete(ctx, admin, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, entry.ID), ErrTimetableNotFound)

	n.AssertExpectations(t)
}

func TestExportWritesWorkbook(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, models.TimetableInput{Course: "c1", Date: monday, Time: "09:00-10:30", Location: "B-101"})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, svc.Export(ctx, student, "", &buf), utils.ErrForbidden)
	require.NoError(t, svc.Export(ctx, owner, "", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, []string{"2026-03-02", "09:00-10:30", "CS101", "Intro", "hopper", "B-101"}, rows[1])
}
