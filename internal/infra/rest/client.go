package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"squares-board/internal/domain"
)

var errNotFound = errors.New("not found")

// Client talks to the contest backend's REST surface.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Scoreboard fetches the full scores/questions/trends snapshot.
func (c *Client) Scoreboard(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := c.getJSON(ctx, "/scores", &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch scoreboard: %w", err)
	}
	return snap, nil
}

// Answers fetches the answer records for one player. A 404 from the backend
// means "unknown player" and resolves to no answers, not an error.
func (c *Client) Answers(ctx context.Context, identity string) ([]domain.AnswerRecord, error) {
	var payload struct {
		Answers []domain.AnswerRecord `json:"answers"`
	}
	err := c.getJSON(ctx, "/answers?email="+url.QueryEscape(identity), &payload)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch answers: %w", err)
	}
	return payload.Answers, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
