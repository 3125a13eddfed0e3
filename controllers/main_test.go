package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/config"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/routes"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	r := gin.New()
	return routes.SetupRouter(r, db), db
}

// newTestUser stores a user with a bcrypt-hashed password and returns it
// with a valid token.
func newTestUser(t *testing.T, db *gorm.DB, username, email string, role models.UserRole) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		FullName: "Test " + username,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID.String(), user.Username, string(user.Role))
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, w)
	msg, _ := body["message"].(string)
	return msg
}

func validInquiryBody() map[string]interface{} {
	return map[string]interface{}{
		"fullname":         "Amara Kumara",
		"email":            "amara@example.com",
		"location":         "Kandy",
		"contactNumber":    "0771234567",
		"plantName":        "Tomato",
		"diseaseName":      "Blight",
		"issueDescription": "Brown spots spreading across the leaves",
	}
}

func validMaterialBody() map[string]interface{} {
	return map[string]interface{}{
		"materialName":      "Copper Fungicide",
		"category":          "Pesticide",
		"diseaseUsage":      []string{"Fungal Infection"},
		"usageInstructions": "Dilute 20g per liter and spray weekly",
		"unitType":          "kg",
		"pricePerUnit":      1250.0,
		"supplierName":      "AgroChem Ltd",
		"supplierContact":   "0719876543",
	}
}
