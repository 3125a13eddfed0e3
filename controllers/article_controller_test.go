package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func doMultipart(t *testing.T, r *gin.Engine, path, token string, fields map[string]string, files ...filePart) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestArticleUpsertByTitle(t *testing.T) {
	r, db := setupRouter(t)
	_, adminToken := newTestUser(t, db, "admin1", "ad@x.com", models.RoleAdmin)

	w := doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title":   "Tips",
		"content": "v1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Posting the same title again updates in place.
	w = doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title":   "Tips",
		"content": "v2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Exactly one record with that title, carrying the latest content.
	var count int64
	require.NoError(t, db.Model(&models.Article{}).Where("title = ?", "Tips").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = doJSON(t, r, "GET", "/api/articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []models.Article
	require.NoError(t, db.Where("title = ?", "Tips").Find(&articles).Error)
	require.Len(t, articles, 1)
	assert.Equal(t, "v2", articles[0].Content)
	assert.Equal(t, "tips", articles[0].Slug)
}

func TestArticleRequiresTitleAndContent(t *testing.T) {
	r, db := setupRouter(t)
	_, adminToken := newTestUser(t, db, "admin1", "ad@x.com", models.RoleAdmin)

	w := doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"content": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and content are required", message(t, w))

	w = doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title": "No content",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticleAttachmentAllowList(t *testing.T) {
	r, db := setupRouter(t)
	_, adminToken := newTestUser(t, db, "admin1", "ad@x.com", models.RoleAdmin)

	// A text file posing as an image is rejected before anything is stored.
	w := doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title":   "Tips",
		"content": "v1",
	}, filePart{field: "image", filename: "notes.txt", contentType: "text/plain", data: []byte("hello")})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	// The rejected upload left no record behind.
	var count int64
	require.NoError(t, db.Model(&models.Article{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Wrong extension with an image MIME type is also rejected.
	w = doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title":   "Tips",
		"content": "v1",
	}, filePart{field: "video", filename: "clip.exe", contentType: "video/mp4", data: []byte{0, 1}})
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestArticleWritesAreStaffOnly(t *testing.T) {
	r, db := setupRouter(t)
	_, farmerToken := newTestUser(t, db, "farmer1", "f1@x.com", models.RoleFarmer)

	w := doMultipart(t, r, "/api/articles", farmerToken, map[string]string{
		"title":   "Tips",
		"content": "v1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Reads are public.
	w2 := doJSON(t, r, "GET", "/api/articles", "", nil)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestArticlePartialUpdateAndDelete(t *testing.T) {
	r, db := setupRouter(t)
	_, adminToken := newTestUser(t, db, "admin1", "ad@x.com", models.RoleAdmin)

	w := doMultipart(t, r, "/api/articles", adminToken, map[string]string{
		"title":   "Pruning basics",
		"content": "v1",
		"link":    "https://example.com/pruning",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	article := decodeBody(t, w)["article"].(map[string]interface{})
	id := article["id"].(string)

	// Content-only edit keeps the title.
	w = doJSON(t, r, "PUT", "/api/articles/"+id, adminToken, map[string]interface{}{
		"content": "v2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pruning basics", body["title"])
	assert.Equal(t, "v2", body["content"])

	w = doJSON(t, r, "DELETE", "/api/articles/"+id, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/articles/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticleRenameToExistingTitleConflicts(t *testing.T) {
	r, db := setupRouter(t)
	_, adminToken := newTestUser(t, db, "admin1", "ad@x.com", models.RoleAdmin)

	w := doMultipart(t, r, "/api/articles", adminToken, map[string]string{"title": "First", "content": "a"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doMultipart(t, r, "/api/articles", adminToken, map[string]string{"title": "Second", "content": "b"})
	require.Equal(t, http.StatusCreated, w.Code)
	second := decodeBody(t, w)["article"].(map[string]interface{})

	w = doJSON(t, r, "PUT", "/api/articles/"+second["id"].(string), adminToken, map[string]interface{}{
		"title": "First",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
