package classController_test

import (
	"cbt/models"
	"cbt/testutils"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T) string {
	admin := testutils.CreateUser(t, models.User{Username: "root", Role: models.RoleAdmin}, "rootpass")
	return testutils.TokenFor(t, admin)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestCreateAndListClasses(t *testing.T) {
	app := testutils.SetupApp(t)
	token := adminToken(t)

	resp, env := testutils.Request(t, app, "POST", "/classes", token, fiber.Map{
		"name":     "SS1",
		"subjects": []string{"Math", "English"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Class
	env.Decode(t, &created)
	assert.Equal(t, "SS1", created.Name)
	assert.Len(t, created.Subjects, 2)

	// Reading classes is open to any signed-in role.
	student := testutils.CreateUser(t, models.User{Username: "jane.doe", Role: models.RoleStudent}, "studpass")
	resp, env = testutils.Request(t, app, "GET", "/classes", testutils.TokenFor(t, student), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var classes []models.Class
	env.Decode(t, &classes)
	assert.Len(t, classes, 1)
}

func TestDuplicateClassNameRejected(t *testing.T) {
	app := testutils.SetupApp(t)
	token := adminToken(t)

	resp, _ := testutils.Request(t, app, "POST", "/classes", token, fiber.Map{"name": "SS1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutils.Request(t, app, "POST", "/classes", token, fiber.Map{"name": "SS1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClassManagementRequiresAdmin(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher := testutils.CreateUser(t, models.User{Username: "mrsmith", Role: models.RoleTeacher}, "teachpass")

	resp, _ := testutils.Request(t, app, "POST", "/classes", testutils.TokenFor(t, teacher), fiber.Map{"name": "SS1"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAddAndRemoveSubject(t *testing.T) {
	app := testutils.SetupApp(t)
	token := adminToken(t)

	resp, env := testutils.Request(t, app, "POST", "/classes", token, fiber.Map{
		"name":     "SS1",
		"subjects": []string{"Math"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var class models.Class
	env.Decode(t, &class)

	resp, env = testutils.Request(t, app, "POST", "/classes/subject", token, fiber.Map{
		"classId": class.ID,
		"subject": "English",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env.Decode(t, &class)
	assert.Len(t, class.Subjects, 2)

	// Adding the same subject twice is a conflict.
	resp, _ = testutils.Request(t, app, "POST", "/classes/subject", token, fiber.Map{
		"classId": class.ID,
		"subject": "English",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = testutils.Request(t, app, "DELETE", "/classes/subject/"+itoa(class.ID)+"/English", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env.Decode(t, &class)
	assert.Equal(t, []string{"Math"}, []string(class.Subjects))

	// Removing a subject the class never offered is also a conflict.
	resp, _ = testutils.Request(t, app, "DELETE", "/classes/subject/"+itoa(class.ID)+"/Physics", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRenameClassChecksConflicts(t *testing.T) {
	app := testutils.SetupApp(t)
	token := adminToken(t)

	resp, env := testutils.Request(t, app, "POST", "/classes", token, fiber.Map{"name": "SS1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var class models.Class
	env.Decode(t, &class)

	resp, _ = testutils.Request(t, app, "POST", "/classes", token, fiber.Map{"name": "SS2"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = testutils.Request(t, app, "PUT", "/classes/"+itoa(class.ID), token, fiber.Map{"name": "SS2"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = testutils.Request(t, app, "PUT", "/classes/"+itoa(class.ID), token, fiber.Map{"name": "JS1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env.Decode(t, &class)
	assert.Equal(t, "JS1", class.Name)
}
