package controllers

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/utils"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/ws"
)

var contactNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

type InquiryInput struct {
	Fullname         string `json:"fullname"`
	Email            string `json:"email"`
	Location         string `json:"location"`
	ContactNumber    string `json:"contactNumber"`
	PlantName        string `json:"plantName"`
	DiseaseName      string `json:"diseaseName"`
	IssueDescription string `json:"issueDescription"`
}

// validate collects every missing or malformed field so the client can fix
// them all in one round trip.
func (in InquiryInput) validate() []string {
	var problems []string
	required := []struct {
		name  string
		value string
	}{
		{"fullname", in.Fullname},
		{"email", in.Email},
		{"location", in.Location},
		{"contactNumber", in.ContactNumber},
		{"plantName", in.PlantName},
		{"diseaseName", in.DiseaseName},
		{"issueDescription", in.IssueDescription},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if strings.TrimSpace(in.ContactNumber) != "" && !contactNumberPattern.MatchString(in.ContactNumber) {
		problems = append(problems, "contactNumber must be a 10 digit number")
	}
	return problems
}

func CreateInquiry(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userIDStr := c.GetString("user_id")

	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var input InquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(problems, "; ")})
		return
	}

	inquiry := models.Inquiry{
		UserID:           uid,
		Fullname:         input.Fullname,
		Email:            input.Email,
		Location:         input.Location,
		ContactNumber:    input.ContactNumber,
		PlantName:        input.PlantName,
		DiseaseName:      input.DiseaseName,
		IssueDescription: input.IssueDescription,
		Status:           models.InquiryPending,
	}

	if err := db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save inquiry"})
		return
	}

	ws.BroadcastInquiryListChanged()
	c.JSON(http.StatusCreated, inquiry)
}

// GetInquiries lists inquiries in insertion order. Farmer-class callers see
// only their own; staff see everything.
func GetInquiries(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	role := models.UserRole(c.GetString("role"))

	query := db.Model(&models.Inquiry{})
	if !models.IsStaffRole(role) {
		query = query.Where("user_id = ?", c.GetString("user_id"))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var inquiries []models.Inquiry
	if err := query.Order("created_at ASC").Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch inquiries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(inquiries),
		"data":  inquiries,
	})
}

// loadInquiryForCaller fetches the inquiry and enforces owner-or-staff
// access, writing the error response itself when the check fails.
func loadInquiryForCaller(c *gin.Context, db *gorm.DB) (*models.Inquiry, bool) {
	var inquiry models.Inquiry
	if err := db.First(&inquiry, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Inquiry not found"})
		return nil, false
	}

	role := models.UserRole(c.GetString("role"))
	if !models.IsStaffRole(role) && inquiry.UserID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to access this inquiry"})
		return nil, false
	}
	return &inquiry, true
}

func GetInquiryDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	inquiry, ok := loadInquiryForCaller(c, db)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// UpdateInquiry replaces the submission fields. Partial updates are not
// allowed: the full required set is revalidated exactly like create.
func UpdateInquiry(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	inquiry, ok := loadInquiryForCaller(c, db)
	if !ok {
		return
	}

	var input InquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(problems, "; ")})
		return
	}

	inquiry.Fullname = input.Fullname
	inquiry.Email = input.Email
	inquiry.Location = input.Location
	inquiry.ContactNumber = input.ContactNumber
	inquiry.PlantName = input.PlantName
	inquiry.DiseaseName = input.DiseaseName
	inquiry.IssueDescription = input.IssueDescription

	if err := db.Save(inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update inquiry"})
		return
	}

	ws.BroadcastInquiryListChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry updated successfully", "inquiry": inquiry})
}

func DeleteInquiry(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	inquiry, ok := loadInquiryForCaller(c, db)
	if !ok {
		return
	}

	if err := db.Delete(inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete inquiry"})
		return
	}

	ws.BroadcastInquiryListChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry deleted successfully"})
}

type ManagerResponseInput struct {
	Response string `json:"response" binding:"required"`
}

// RespondToInquiry records the staff answer, resolves the inquiry and
// notifies the submitter. Route-level middleware already restricted this
// to staff.
func RespondToInquiry(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var inquiry models.Inquiry
	if err := db.First(&inquiry, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Inquiry not found"})
		return
	}

	var input ManagerResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	inquiry.ManagerResponse = input.Response
	inquiry.Status = models.InquiryResolved

	if err := db.Save(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save response"})
		return
	}

	// Notify the submitter off the request path; a mail failure never
	// fails the response itself.
	go func(to, plant, response string) {
		subject := "Your plant inquiry has been answered"
		body := fmt.Sprintf(`
		<h3>Hello,</h3>
		<p>An agriculture officer has responded to your inquiry about <b>%s</b>:</p>
		<blockquote>%s</blockquote>
		<p>Log in to SMART AGRIGUARD to see the full response.</p>
		`, plant, response)
		if err := utils.SendEmail(to, subject, body); err != nil {
			log.Println("Could not send response email:", err)
		}
	}(inquiry.Email, inquiry.PlantName, input.Response)

	ws.SendInquiryStatusUpdate(inquiry.ID.String(), string(inquiry.Status), inquiry.ManagerResponse)
	ws.BroadcastInquiryListChanged()

	c.JSON(http.StatusOK, gin.H{"message": "Response saved successfully", "inquiry": inquiry})
}
