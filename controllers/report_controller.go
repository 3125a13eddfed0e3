package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

// ExportMaterialsReport writes the whole catalog into an xlsx workbook for
// the admin Reports tab.
func ExportMaterialsReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var materials []models.Material
	if err := db.Order("created_at ASC").Find(&materials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch materials"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Materials"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Material", "Category", "Disease Usage", "Unit", "Price Per Unit", "Supplier", "Supplier Contact", "Added"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, m := range materials {
		values := []interface{}{
			m.MaterialName,
			string(m.Category),
			strings.Join(m.DiseaseUsage, ", "),
			string(m.UnitType),
			m.PricePerUnit,
			m.SupplierName,
			m.SupplierContact,
			m.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.SetColWidth(sheet, "A", "H", 22)

	filename := fmt.Sprintf("materials-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not write report"})
		return
	}
}

// ExportInquiriesReport summarises inquiry volume and status for staff.
func ExportInquiriesReport(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var inquiries []models.Inquiry
	if err := db.Order("created_at ASC").Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch inquiries"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inquiries"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Submitted", "Fullname", "Plant", "Disease", "Status", "Responded"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, q := range inquiries {
		responded := "no"
		if q.ManagerResponse != "" {
			responded = "yes"
		}
		values := []interface{}{
			q.CreatedAt.Format("2006-01-02"),
			q.Fullname,
			q.PlantName,
			q.DiseaseName,
			string(q.Status),
			responded,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.SetColWidth(sheet, "A", "F", 22)

	filename := fmt.Sprintf("inquiries-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not write report"})
		return
	}
}
