package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Attachment allow-lists. Anything outside these sets is rejected with 415
// before any record is written.
var (
	imageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}
	videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".ogg": true}

	imageMIMEPrefixes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}
	videoMIMEPrefixes = []string{"video/mp4", "video/webm", "video/ogg", "application/ogg"}
)

const MaxAttachmentSize = 20 * 1024 * 1024 // bytes

// CheckImageFile validates extension, MIME type and size for an image upload.
func CheckImageFile(fh *multipart.FileHeader) error {
	return checkFile(fh, imageExtensions, imageMIMEPrefixes, "images (jpeg, jpg, png, gif)")
}

// CheckVideoFile validates extension, MIME type and size for a video upload.
func CheckVideoFile(fh *multipart.FileHeader) error {
	return checkFile(fh, videoExtensions, videoMIMEPrefixes, "videos (mp4, webm, ogg)")
}

func checkFile(fh *multipart.FileHeader, exts map[string]bool, mimes []string, allowed string) error {
	if fh.Size > MaxAttachmentSize {
		return fmt.Errorf("file exceeds the %dMB limit", MaxAttachmentSize/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !exts[ext] {
		return fmt.Errorf("only %s are allowed", allowed)
	}
	contentType := fh.Header.Get("Content-Type")
	for _, m := range mimes {
		if strings.HasPrefix(contentType, m) {
			return nil
		}
	}
	return fmt.Errorf("only %s are allowed", allowed)
}
