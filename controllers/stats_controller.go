package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

// GetUserCount returns the total number of registered accounts.
func GetUserCount(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetRegistrationStats buckets account creations per day, ascending.
// Bucketing happens in Go so the query stays portable across drivers.
func GetRegistrationStats(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var createdAts []time.Time
	if err := db.Model(&models.User{}).Pluck("created_at", &createdAts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user registration stats"})
		return
	}

	stats := make(map[string]int64)
	for _, t := range createdAts {
		stats[t.UTC().Format("2006-01-02")]++
	}

	labels := make([]string, 0, len(stats))
	for date := range stats {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	values := make([]int64, len(labels))
	for i, date := range labels {
		values[i] = stats[date]
	}

	c.JSON(http.StatusOK, gin.H{"labels": labels, "values": values})
}

// GetDashboardOverview aggregates the counters the admin dashboard shows.
func GetDashboardOverview(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var totalUsers, totalInquiries, totalArticles, totalMaterials int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Inquiry{}).Count(&totalInquiries)
	db.Model(&models.Article{}).Count(&totalArticles)
	db.Model(&models.Material{}).Count(&totalMaterials)

	var pending, resolved int64
	db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryPending).Count(&pending)
	db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryResolved).Count(&resolved)

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_inquiries":   totalInquiries,
		"total_articles":    totalArticles,
		"total_materials":   totalMaterials,
		"pending_inquiries": pending,
		"resolved_inquiries": resolved,
	})
}
