package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/utils"
)

// isDuplicateKey matches unique-constraint violations from both postgres
// and the sqlite test driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// deleteAttachments removes storage objects best-effort. Called only after
// the record write has been acknowledged; failures are logged, never
// propagated.
func deleteAttachments(urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := utils.DeleteFileFromSupabase(u); err != nil {
			log.Println("Could not delete old attachment:", err)
		}
	}
}

// CreateOrUpdateArticle takes a multipart form with title, content,
// optional link and at most one image and one video. A title that already
// exists updates that article in place; the replaced attachment files are
// deleted only after the record is saved.
func CreateOrUpdateArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	link := c.PostForm("link")

	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and content are required"})
		return
	}

	// Validate both files before uploading anything, so a rejected upload
	// never leaves a partially written record or a stray object.
	imageFile, _ := c.FormFile("image")
	videoFile, _ := c.FormFile("video")

	if imageFile != nil {
		if err := utils.CheckImageFile(imageFile); err != nil {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": err.Error()})
			return
		}
	}
	if videoFile != nil {
		if err := utils.CheckVideoFile(videoFile); err != nil {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"message": err.Error()})
			return
		}
	}

	var imageURL, videoURL string
	if imageFile != nil {
		url, err := utils.UploadImageToSupabase(imageFile, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not upload image"})
			return
		}
		imageURL = url
	}
	if videoFile != nil {
		url, err := utils.UploadVideoToSupabase(videoFile, uuid.New().String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not upload video"})
			return
		}
		videoURL = url
	}

	var existing models.Article
	err := db.Where("title = ?", title).First(&existing).Error
	if err == nil {
		// Upsert path: update in place, then retire the replaced files.
		oldImage, oldVideo := "", ""
		existing.Content = content
		existing.Link = link
		existing.Slug = slug.Make(title)
		if imageURL != "" {
			oldImage = existing.Image
			existing.Image = imageURL
		}
		if videoURL != "" {
			oldVideo = existing.Video
			existing.Video = videoURL
		}

		if err := db.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update article"})
			return
		}

		deleteAttachments(oldImage, oldVideo)
		c.JSON(http.StatusOK, gin.H{"message": "Article updated", "article": existing})
		return
	}

	article := models.Article{
		Title:   title,
		Slug:    slug.Make(title),
		Content: content,
		Link:    link,
		Image:   imageURL,
		Video:   videoURL,
	}

	if err := db.Create(&article).Error; err != nil {
		if isDuplicateKey(err) {
			// Lost a create race on the same title; the unique index is
			// the backstop, never a silent overwrite.
			c.JSON(http.StatusConflict, gin.H{"message": "An article with this title already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save article"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Article created", "article": article})
}

func GetArticles(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var articles []models.Article
	if err := db.Order("created_at ASC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticleDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var article models.Article
	if err := db.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

type UpdateArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateArticle is the partial edit used by the dashboard: title and
// content only, attachments stay as they are.
func UpdateArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var article models.Article
	if err := db.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	var input UpdateArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.Title != "" {
		article.Title = input.Title
		article.Slug = slug.Make(input.Title)
	}
	if input.Content != "" {
		article.Content = input.Content
	}

	if err := db.Save(&article).Error; err != nil {
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "An article with this title already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update article"})
		return
	}
	c.JSON(http.StatusOK, article)
}

func DeleteArticle(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var article models.Article
	if err := db.First(&article, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	if err := db.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete article"})
		return
	}

	deleteAttachments(article.Image, article.Video)
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
