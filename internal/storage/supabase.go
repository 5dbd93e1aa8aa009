package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SupabaseStorage handles file uploads to Supabase Storage
type SupabaseStorage struct {
	baseURL    string
	apiKey     string
	bucketName string
	httpClient *http.Client
}

// NewSupabaseStorage creates a new Supabase Storage client
func NewSupabaseStorage(projectRef, apiKey, bucketName string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    fmt.Sprintf("https://%s.supabase.co", projectRef),
		apiKey:     apiKey,
		bucketName: bucketName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SupabaseStorage) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucketName, path)
}

// Put uploads a file, replacing any object already stored at path.
func (s *SupabaseStorage) Put(ctx context.Context, path string, body io.Reader, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// Delete removes a file from Supabase Storage
func (s *SupabaseStorage) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// PublicURL returns the public URL for a file
func (s *SupabaseStorage) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucketName, path)
}
