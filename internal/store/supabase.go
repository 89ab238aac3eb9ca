package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jharkhand-tourism-mvp/server/internal/config"
	errx "github.com/jharkhand-tourism-mvp/server/internal/core/error"
	"github.com/jharkhand-tourism-mvp/server/internal/models"
	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

// SupabaseClient reads and writes rows through the Supabase PostgREST API.
type SupabaseClient struct {
	url  string
	key  string
	http *http.Client
}

func NewSupabaseClient(cfg config.SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{
		url:  cfg.URL,
		key:  cfg.Key,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SupabaseClient) authorize(req *http.Request) {
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
}

// ListProducts returns the full product catalog ordered by id.
func (s *SupabaseClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	url := fmt.Sprintf("%s/rest/v1/products?select=*&order=id", s.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errx.Internal(err)
	}
	s.authorize(req)

	resp, err := s.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("failed to fetch products from supabase")
		return nil, errx.Internal(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errx.Internal(fmt.Errorf("read products body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logx.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("supabase rejected products query")
		return nil, errx.Internal(fmt.Errorf("supabase returned status %d", resp.StatusCode))
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logx.Error().Err(err).Msg("failed to decode products")
		return nil, errx.Internal(fmt.Errorf("decode products: %w", err))
	}
	return products, nil
}

// InsertActivityLog appends one row to the user activity log.
func (s *SupabaseClient) InsertActivityLog(ctx context.Context, userID, action string) error {
	payload := map[string]string{
		"user_id": userID,
		"action":  action,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errx.Internal(fmt.Errorf("marshal activity log: %w", err))
	}

	url := fmt.Sprintf("%s/rest/v1/user_activity_log", s.url)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errx.Internal(err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("failed to insert activity log")
		return errx.Internal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		logx.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("supabase rejected activity log insert")
		return errx.Internal(fmt.Errorf("supabase returned status %d", resp.StatusCode))
	}
	return nil
}
