package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	storage "github.com/supabase-community/storage-go"
)

// UploadNoteToSupabase stores an uploaded note file in Supabase Storage.
// Path: uploads/notes/<fileID>.pdf. Returns the public URL submitters use
// as the note url.
func UploadNoteToSupabase(data []byte, fileID string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return "", errors.New("SUPABASE_URL or SUPABASE_KEY is not set")
	}

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	objectPath := fmt.Sprintf("notes/%s.pdf", fileID)
	contentType := "application/pdf"
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	_, err := storageClient.UploadFile("uploads", objectPath, bytes.NewReader(data), options)
	if err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/uploads/%s", supabaseURL, objectPath)
	return publicURL, nil
}
