package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

func validFarmerBody() map[string]interface{} {
	return map[string]interface{}{
		"firstName":     "Nimal",
		"lastName":      "Perera",
		"email":         "nimal@example.com",
		"role":          "farmer",
		"gender":        "Male",
		"dob":           "1980-04-12",
		"address":       "12 Lake Road, Kandy",
		"contactNumber": "0771234567",
	}
}

func TestFarmerCreateValidation(t *testing.T) {
	r, db := setupRouter(t)
	_, officerToken := newTestUser(t, db, "officer1", "o@x.com", models.RoleOfficer)

	body := validFarmerBody()
	delete(body, "address")
	w := doJSON(t, r, "POST", "/farmer", officerToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "send all required field", message(t, w))

	body = validFarmerBody()
	body["firstName"] = "Nimal123"
	w = doJSON(t, r, "POST", "/farmer", officerToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = validFarmerBody()
	body["contactNumber"] = "12345"
	w = doJSON(t, r, "POST", "/farmer", officerToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Contact number should be 10 digit number without letters.", message(t, w))

	w = doJSON(t, r, "POST", "/farmer", officerToken, validFarmerBody())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFarmerCrud(t *testing.T) {
	r, db := setupRouter(t)
	_, officerToken := newTestUser(t, db, "officer1", "o@x.com", models.RoleOfficer)

	w := doJSON(t, r, "POST", "/farmer", officerToken, validFarmerBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "GET", "/farmer", officerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	w = doJSON(t, r, "GET", "/farmer/"+id, officerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	farmer := decodeBody(t, w)["farmer"].(map[string]interface{})
	assert.Equal(t, "Nimal", farmer["firstName"])

	body := validFarmerBody()
	body["address"] = "45 Hill Street, Matale"
	w = doJSON(t, r, "PUT", "/farmer/"+id, officerToken, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Farmer submission updated successfully", message(t, w))

	w = doJSON(t, r, "DELETE", "/farmer/"+id, officerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "farmer details deleted successfully", message(t, w))

	w = doJSON(t, r, "GET", "/farmer/"+id, officerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFarmerDuplicateEmail(t *testing.T) {
	r, db := setupRouter(t)
	_, officerToken := newTestUser(t, db, "officer1", "o@x.com", models.RoleOfficer)

	w := doJSON(t, r, "POST", "/farmer", officerToken, validFarmerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/farmer", officerToken, validFarmerBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFarmerRoutesAreStaffOnly(t *testing.T) {
	r, db := setupRouter(t)
	_, farmerToken := newTestUser(t, db, "farmer1", "f1@x.com", models.RoleFarmer)

	w := doJSON(t, r, "GET", "/farmer", farmerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
