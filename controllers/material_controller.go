package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/utils"
)

type MaterialInput struct {
	MaterialName      string   `json:"materialName"`
	Category          string   `json:"category"`
	DiseaseUsage      []string `json:"diseaseUsage"`
	UsageInstructions string   `json:"usageInstructions"`
	UnitType          string   `json:"unitType"`
	PricePerUnit      *float64 `json:"pricePerUnit"`
	SupplierName      string   `json:"supplierName"`
	SupplierContact   string   `json:"supplierContact"`
	Image             string   `json:"image"`
}

func (in MaterialInput) validate() []string {
	var problems []string
	if strings.TrimSpace(in.MaterialName) == "" {
		problems = append(problems, "materialName is required")
	}
	if !models.IsValidCategory(models.MaterialCategory(in.Category)) {
		problems = append(problems, "category must be one of Fertilizer, Pesticide, Seeds, Equipment")
	}
	for _, tag := range in.DiseaseUsage {
		if !models.IsValidDiseaseUsage(tag) {
			problems = append(problems, fmt.Sprintf("diseaseUsage tag %q is not recognised", tag))
		}
	}
	if strings.TrimSpace(in.UsageInstructions) == "" {
		problems = append(problems, "usageInstructions is required")
	}
	if !models.IsValidUnitType(models.UnitType(in.UnitType)) {
		problems = append(problems, "unitType must be one of kg, liters, packs")
	}
	if in.PricePerUnit == nil {
		problems = append(problems, "pricePerUnit is required")
	} else if *in.PricePerUnit < 0 {
		problems = append(problems, "pricePerUnit must not be negative")
	}
	if strings.TrimSpace(in.SupplierName) == "" {
		problems = append(problems, "supplierName is required")
	}
	if !contactNumberPattern.MatchString(in.SupplierContact) {
		problems = append(problems, "supplierContact must be a 10 digit number")
	}
	return problems
}

func CreateMaterial(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(problems, "; ")})
		return
	}

	material := models.Material{
		MaterialName:      input.MaterialName,
		Category:          models.MaterialCategory(input.Category),
		DiseaseUsage:      input.DiseaseUsage,
		UsageInstructions: input.UsageInstructions,
		UnitType:          models.UnitType(input.UnitType),
		PricePerUnit:      *input.PricePerUnit,
		SupplierName:      input.SupplierName,
		SupplierContact:   input.SupplierContact,
		Image:             input.Image,
	}

	if err := db.Create(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save material"})
		return
	}
	c.JSON(http.StatusCreated, material)
}

// Whitelisted sort columns for the catalog listing.
var materialSortFields = map[string]string{
	"materialName":    "material_name",
	"category":        "category",
	"unitType":        "unit_type",
	"pricePerUnit":    "price_per_unit",
	"supplierName":    "supplier_name",
	"createdAt":       "created_at",
	"supplierContact": "supplier_contact",
}

// GetMaterials lists the catalog with optional category filter, name
// search, whitelisted sorting and pagination. Ties fall back to insertion
// order so the sort is stable.
func GetMaterials(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.Material{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("material_name LIKE ?", "%"+search+"%")
	}

	order := "created_at ASC"
	if sortBy := c.Query("sort_by"); sortBy != "" {
		column, ok := materialSortFields[sortBy]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot sort by " + sortBy})
			return
		}
		direction := "ASC"
		if strings.EqualFold(c.Query("order"), "desc") {
			direction = "DESC"
		}
		order = column + " " + direction + ", created_at ASC"
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not count materials"})
		return
	}

	var materials []models.Material
	if err := query.Order(order).Limit(limit).Offset(offset).Find(&materials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch materials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  materials,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func GetMaterialDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var material models.Material
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Material not found"})
		return
	}
	c.JSON(http.StatusOK, material)
}

// UpdateMaterial replaces the record with the same validation as create.
func UpdateMaterial(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var material models.Material
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Material not found"})
		return
	}

	var input MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": strings.Join(problems, "; ")})
		return
	}

	material.MaterialName = input.MaterialName
	material.Category = models.MaterialCategory(input.Category)
	material.DiseaseUsage = input.DiseaseUsage
	material.UsageInstructions = input.UsageInstructions
	material.UnitType = models.UnitType(input.UnitType)
	material.PricePerUnit = *input.PricePerUnit
	material.SupplierName = input.SupplierName
	material.SupplierContact = input.SupplierContact
	if input.Image != "" {
		material.Image = input.Image
	}

	if err := db.Save(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update material"})
		return
	}
	c.JSON(http.StatusOK, material)
}

func DeleteMaterial(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var material models.Material
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Material not found"})
		return
	}

	if err := db.Delete(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete material"})
		return
	}

	deleteAttachments(material.Image)
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}

// UploadMaterialImage attaches a catalog photo to an existing material.
// The previous image object is retired after the record write commits.
func UploadMaterialImage(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var material models.Material
	if err := db.First(&material, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Material not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file attached"})
		return
	}
	if err := utils.CheckImageFile(file); err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": err.Error()})
		return
	}

	url, err := utils.UploadImageToSupabase(file, uuid.New().String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not upload image"})
		return
	}

	oldImage := material.Image
	material.Image = url
	if err := db.Save(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update material"})
		return
	}

	deleteAttachments(oldImage)
	c.JSON(http.StatusOK, material)
}
