package questionController_test

import (
	"cbt/database"
	"cbt/models"
	"cbt/testutils"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTeacher(t *testing.T) (models.User, string) {
	teacher := testutils.CreateUser(t, models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}, "teachpass")
	return teacher, testutils.TokenFor(t, teacher)
}

func questionPayload() fiber.Map {
	return fiber.Map{
		"subject":       "Math",
		"class":         "SS1",
		"text":          "2+2?",
		"options":       []string{"3", "4"},
		"correctAnswer": "4",
	}
}

func TestCreateQuestion(t *testing.T) {
	app := testutils.SetupApp(t)
	teacher, token := seedTeacher(t)

	resp, env := testutils.Request(t, app, "POST", "/questions", token, questionPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Question
	env.Decode(t, &created)
	assert.Equal(t, "Math", created.Subject)
	assert.Equal(t, teacher.ID, created.CreatedByID)
	assert.Len(t, created.Options, 2)
}

func TestCreateQuestionRejectsInvalid(t *testing.T) {
	app := testutils.SetupApp(t)
	_, token := seedTeacher(t)

	payload := questionPayload()
	payload["text"] = ""
	payload["options"] = []string{"only one"}

	resp, env := testutils.Request(t, app, "POST", "/questions", token, payload)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errs map[string]string
	env.Decode(t, &errs)
	assert.Contains(t, errs, "text")
	assert.Contains(t, errs, "options")
}

func TestCreateQuestionUnassignedTeacher(t *testing.T) {
	app := testutils.SetupApp(t)
	_, token := seedTeacher(t)

	payload := questionPayload()
	payload["subject"] = "English"
	payload["class"] = "SS2"

	resp, env := testutils.Request(t, app, "POST", "/questions", token, payload)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, env.Message, "Not assigned")
}

func TestListQuestionsScopedByAssignment(t *testing.T) {
	app := testutils.SetupApp(t)
	teacher, token := seedTeacher(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.Question{Subject: "Math", Class: "SS1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", CreatedByID: teacher.ID}).Error)
	require.NoError(t, db.Create(&models.Question{Subject: "English", Class: "SS2", Text: "Spell cat.", Options: []string{"cat", "kat"}, CorrectAnswer: "cat", CreatedByID: teacher.ID}).Error)

	resp, env := testutils.Request(t, app, "GET", "/questions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var visible []models.Question
	env.Decode(t, &visible)
	require.Len(t, visible, 1)
	assert.Equal(t, "Math", visible[0].Subject)

	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")
	resp, env = testutils.Request(t, app, "GET", "/questions", testutils.TokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env.Decode(t, &visible)
	assert.Len(t, visible, 2)
}

func TestListQuestionsWithoutAssignmentsIsEmpty(t *testing.T) {
	app := testutils.SetupApp(t)
	teacher, _ := seedTeacher(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.Question{Subject: "Math", Class: "SS1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", CreatedByID: teacher.ID}).Error)

	// Unlike tests, a bare question list is fine for the unassigned.
	student := testutils.CreateUser(t, models.User{Username: "lost.kid", Role: models.RoleStudent}, "studpass")
	resp, env := testutils.Request(t, app, "GET", "/questions", testutils.TokenFor(t, student), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var visible []models.Question
	env.Decode(t, &visible)
	assert.Empty(t, visible)
}

func TestBulkImportSkipsBadEntries(t *testing.T) {
	app := testutils.SetupApp(t)
	_, token := seedTeacher(t)

	resp, env := testutils.Request(t, app, "POST", "/questions/bulk", token, fiber.Map{
		"questions": []fiber.Map{
			questionPayload(),
			{"subject": "English", "class": "SS2", "text": "Spell cat.", "options": []string{"cat", "kat"}, "correctAnswer": "cat"}, // unassigned
			{"subject": "Math", "class": "SS1", "text": "", "options": []string{"3", "4"}, "correctAnswer": "4"},                   // invalid
		},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var data struct {
		Created int    `json:"created"`
		IDs     []uint `json:"ids"`
	}
	env.Decode(t, &data)
	assert.Equal(t, 1, data.Created)
	assert.Len(t, data.IDs, 1)
}

func TestBulkImportAllBadFails(t *testing.T) {
	app := testutils.SetupApp(t)
	_, token := seedTeacher(t)

	resp, env := testutils.Request(t, app, "POST", "/questions/bulk", token, fiber.Map{
		"questions": []fiber.Map{
			{"subject": "English", "class": "SS2", "text": "Spell cat.", "options": []string{"cat", "kat"}, "correctAnswer": "cat"},
		},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "No valid questions")
}

func TestDeleteQuestionIsAdminOnly(t *testing.T) {
	app := testutils.SetupApp(t)
	teacher, token := seedTeacher(t)
	db := database.Database.Db

	question := models.Question{Subject: "Math", Class: "SS1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", CreatedByID: teacher.ID}
	require.NoError(t, db.Create(&question).Error)

	path := "/questions/" + strconv.FormatUint(uint64(question.ID), 10)

	resp, _ := testutils.Request(t, app, "DELETE", path, token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")
	resp, _ = testutils.Request(t, app, "DELETE", path, testutils.TokenFor(t, admin), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
