package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"minerva/api/errs"
	"minerva/config"
	"minerva/models"
)

const readmeSystemPrompt = "You are an assistant that organizes project notes into a structured, " +
	"well formatted README document. Produce a coherent document based on the " +
	"provided notes, arranging the information into logical sections."

// ReadmeService turns a project's accumulated notes into a README
// document through one chat-completion call. Only one generation may be
// in flight at a time; a second request while one is outstanding is
// rejected rather than queued.
type ReadmeService struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
	inflight    atomic.Bool
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewReadmeService(cfg config.OpenAIConfig) *ReadmeService {
	return &ReadmeService{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate returns the README text for the given project. Projects
// without notes get a fixed message and no remote call is made. Remote
// failures are surfaced as errors and never retried.
func (s *ReadmeService) Generate(ctx context.Context, project models.Project, notes []models.Note) (string, error) {
	var projectNotes []models.Note
	for _, note := range notes {
		if note.ProjectID == project.ID {
			projectNotes = append(projectNotes, note)
		}
	}
	if len(projectNotes) == 0 {
		return fmt.Sprintf("No notes available for project %q. Add notes to this project to generate a README.", project.Name), nil
	}

	if s.apiKey == "" {
		return "", errs.ErrAPIKeyMissing
	}
	if !s.inflight.CompareAndSwap(false, true) {
		return "", errs.ErrReadmeInProgress
	}
	defer s.inflight.Store(false)

	var sb strings.Builder
	for i, note := range projectNotes {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Note %d:\nTitle: %s\nContent: %s", i+1, note.Title, note.Content)
	}

	request := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: readmeSystemPrompt},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Generate a structured, well formatted README document for the project %q with the following description: %q\n\nProject notes:\n\n%s",
					project.Name, project.Description, sb.String(),
				),
			},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, resp.Status)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}
