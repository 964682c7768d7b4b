package resultController_test

import (
	"cbt/database"
	"cbt/models"
	"cbt/testutils"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app     *fiber.App
	test    models.Test
	student models.User
	result  models.Result
}

func setupFixture(t *testing.T) *fixture {
	app := testutils.SetupApp(t)
	db := database.Database.Db

	test := models.Test{
		Title:         "Math midterm",
		Subject:       "Math",
		Class:         "SS1",
		Duration:      30,
		Session:       "2025/2026 Semester 1",
		QuestionCount: 2,
		StartAt:       time.Now().Add(-time.Hour),
		EndAt:         time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&test).Error)

	student := testutils.CreateUser(t, models.User{
		Username:         "jane.doe",
		Name:             "Jane",
		Surname:          "Doe",
		Role:             models.RoleStudent,
		Class:            "SS1",
		EnrolledSubjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "studpass")

	result := models.Result{
		TestID:         test.ID,
		UserID:         student.ID,
		Subject:        "Math",
		Class:          "SS1",
		Session:        test.Session,
		Score:          1,
		TotalQuestions: 2,
		SubmittedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&result).Error)

	return &fixture{app: app, test: test, student: student, result: result}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestStudentsOnlySeeOwnResults(t *testing.T) {
	f := setupFixture(t)
	db := database.Database.Db

	other := testutils.CreateUser(t, models.User{
		Username:         "john.roe",
		Role:             models.RoleStudent,
		EnrolledSubjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "studpass")
	require.NoError(t, db.Create(&models.Result{
		TestID: f.test.ID, UserID: other.ID, Subject: "Math", Class: "SS1",
		Session: f.test.Session, Score: 2, TotalQuestions: 2, SubmittedAt: time.Now(),
	}).Error)

	resp, env := testutils.Request(t, f.app, "GET", "/results", testutils.TokenFor(t, f.student), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []models.Result
	env.Decode(t, &results)
	require.Len(t, results, 1)
	assert.Equal(t, f.student.ID, results[0].UserID)
}

func TestTeacherResultsScopedToAssignments(t *testing.T) {
	f := setupFixture(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.Result{
		TestID: f.test.ID + 100, UserID: f.student.ID, Subject: "English", Class: "SS2",
		Session: f.test.Session, Score: 2, TotalQuestions: 2, SubmittedAt: time.Now(),
	}).Error)

	teacher := testutils.CreateUser(t, models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "teachpass")

	resp, env := testutils.Request(t, f.app, "GET", "/results", testutils.TokenFor(t, teacher), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []models.Result
	env.Decode(t, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "Math", results[0].Subject)
}

func TestResultDetailsIncludeCheatLogs(t *testing.T) {
	f := setupFixture(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.CheatLog{
		TestID: f.test.ID, UserID: f.student.ID, Type: "tab-switch", Timestamp: time.Now(),
	}).Error)

	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")

	resp, env := testutils.Request(t, f.app, "GET", "/results/details/"+itoa(f.result.ID), testutils.TokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Result    models.Result     `json:"result"`
		Student   models.User       `json:"student"`
		CheatLogs []models.CheatLog `json:"cheatLogs"`
	}
	env.Decode(t, &data)

	assert.Equal(t, f.result.ID, data.Result.ID)
	assert.Equal(t, f.student.Username, data.Student.Username)
	require.Len(t, data.CheatLogs, 1)
	assert.Equal(t, "tab-switch", data.CheatLogs[0].Type)
}

func TestResultDetailsForeignStudentForbidden(t *testing.T) {
	f := setupFixture(t)

	other := testutils.CreateUser(t, models.User{Username: "john.roe", Role: models.RoleStudent}, "studpass")

	resp, _ := testutils.Request(t, f.app, "GET", "/results/details/"+itoa(f.result.ID), testutils.TokenFor(t, other), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateResultScoreBounds(t *testing.T) {
	f := setupFixture(t)
	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")
	token := testutils.TokenFor(t, admin)
	path := "/results/" + itoa(f.result.ID)

	resp, _ := testutils.Request(t, f.app, "PUT", path, token, fiber.Map{"score": 3})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = testutils.Request(t, f.app, "PUT", path, token, fiber.Map{"score": -1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env := testutils.Request(t, f.app, "PUT", path, token, fiber.Map{"score": 2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Result
	env.Decode(t, &updated)
	assert.Equal(t, 2, updated.Score)
}

func TestUpdateResultRequiresAdmin(t *testing.T) {
	f := setupFixture(t)

	teacher := testutils.CreateUser(t, models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "teachpass")

	resp, _ := testutils.Request(t, f.app, "PUT", "/results/"+itoa(f.result.ID), testutils.TokenFor(t, teacher), fiber.Map{"score": 2})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestExportByTestCSV(t *testing.T) {
	f := setupFixture(t)
	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")

	resp, _ := testutils.Request(t, f.app, "GET", "/results/export/test/"+itoa(f.test.ID), testutils.TokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "results_test_"+itoa(f.test.ID)+".csv")

	body := testutils.ReadBody(t, resp)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Username")
	assert.Contains(t, lines[1], "jane.doe")
	assert.Contains(t, lines[1], "Math")
}

func TestExportByTestPDF(t *testing.T) {
	f := setupFixture(t)
	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")

	resp, _ := testutils.Request(t, f.app, "GET", "/results/export/test/"+itoa(f.test.ID)+"?format=pdf", testutils.TokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/pdf")

	body := testutils.ReadBody(t, resp)
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestExportBySubjectScopedToTeacher(t *testing.T) {
	f := setupFixture(t)

	teacher := testutils.CreateUser(t, models.User{
		Username: "mrjones",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "English", Class: "SS2"}},
	}, "teachpass")

	resp, _ := testutils.Request(t, f.app, "GET", "/results/export/subject/SS1/Math", testutils.TokenFor(t, teacher), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assigned := testutils.CreateUser(t, models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "teachpass")

	resp, _ = testutils.Request(t, f.app, "GET", "/results/export/subject/SS1/Math", testutils.TokenFor(t, assigned), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := testutils.ReadBody(t, resp)
	assert.Contains(t, body, "jane.doe")
}

func TestExportForbiddenForStudents(t *testing.T) {
	f := setupFixture(t)

	resp, _ := testutils.Request(t, f.app, "GET", "/results/export/test/"+itoa(f.test.ID), testutils.TokenFor(t, f.student), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
