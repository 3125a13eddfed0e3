package controllers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

// Legacy farmer-profile endpoints. Kept separate from Inquiry: the two
// shapes were never reconciled upstream, so messages and field rules stay
// exactly as the first version of the system had them.

var namePattern = regexp.MustCompile(`^[A-Za-z]+$`)

type FarmerInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
}

func (in FarmerInput) complete() bool {
	return in.FirstName != "" && in.LastName != "" && in.Role != "" &&
		in.Email != "" && in.Gender != "" && in.Address != "" &&
		in.ContactNumber != "" && in.DOB != ""
}

func (in FarmerInput) validate() (time.Time, string) {
	if !in.complete() {
		return time.Time{}, "send all required field"
	}
	if !namePattern.MatchString(in.FirstName) || !namePattern.MatchString(in.LastName) {
		return time.Time{}, "Names may contain letters only"
	}
	if !models.IsValidFarmerProfileRole(in.Role) {
		return time.Time{}, "Invalid role"
	}
	if in.Gender != "Male" && in.Gender != "Female" {
		return time.Time{}, "Invalid gender"
	}
	if !contactNumberPattern.MatchString(in.ContactNumber) {
		return time.Time{}, "Contact number should be 10 digit number without letters."
	}
	dob, err := time.Parse("2006-01-02", in.DOB)
	if err != nil {
		return time.Time{}, "Invalid date of birth"
	}
	return dob, ""
}

func CreateFarmer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input FarmerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	dob, problem := input.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": problem})
		return
	}

	farmer := models.Farmer{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Role:          input.Role,
		Gender:        input.Gender,
		DOB:           dob,
		Address:       input.Address,
		ContactNumber: input.ContactNumber,
	}

	if err := db.Create(&farmer).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "A farmer with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save farmer details"})
		return
	}
	c.JSON(http.StatusCreated, farmer)
}

func GetFarmers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var farmers []models.Farmer
	if err := db.Order("created_at ASC").Find(&farmers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch farmers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(farmers),
		"data":  farmers,
	})
}

func GetFarmerDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var farmer models.Farmer
	if err := db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "farmer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"farmer": farmer})
}

func UpdateFarmer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var farmer models.Farmer
	if err := db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Farmer inqury not found"})
		return
	}

	var input FarmerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	dob, problem := input.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": problem})
		return
	}

	farmer.FirstName = input.FirstName
	farmer.LastName = input.LastName
	farmer.Email = input.Email
	farmer.Role = input.Role
	farmer.Gender = input.Gender
	farmer.DOB = dob
	farmer.Address = input.Address
	farmer.ContactNumber = input.ContactNumber

	if err := db.Save(&farmer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update farmer details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Farmer submission updated successfully"})
}

func DeleteFarmer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var farmer models.Farmer
	if err := db.First(&farmer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "farmer not found"})
		return
	}

	if err := db.Delete(&farmer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete farmer details"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "farmer details deleted successfully"})
}
