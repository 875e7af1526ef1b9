package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/utils"
)

// RemoteError carries the status the metadata API answered with so the
// service layer can decide whether the failure is the caller's fault
// or an upstream problem.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("metadata API returned %d: %s", e.StatusCode, e.Message)
}

// MetadataClient writes finished structures to the question metadata
// API instead of the local database. Used when PERSISTENCE_MODE=remote.
type MetadataClient struct {
	baseURL    string
	httpClient *http.Client
	logger     utils.Logger
}

func NewMetadataClient(baseURL string, logger utils.Logger) *MetadataClient {
	return &MetadataClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type structureRequest struct {
	MetadataID  uint                `json:"metadata_id"`
	BuilderType models.QuestionType `json:"builderType"`
	Data        json.RawMessage     `json:"data"`
}

type structureResponse struct {
	ID uint `json:"id"`
}

// WriteStructure posts the structure to the metadata API and fills in
// the remote-assigned ID on success.
func (c *MetadataClient) WriteStructure(ctx context.Context, record *models.QuestionStructure) error {
	body, err := json.Marshal(structureRequest{
		MetadataID:  record.MetadataID,
		BuilderType: record.BuilderType,
		Data:        json.RawMessage(record.Data),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal structure request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/questions/%d/structure", c.baseURL, record.MetadataID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build structure request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("metadata API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("metadata API rejected structure",
			"metadata_id", record.MetadataID,
			"status", resp.StatusCode)
		return &RemoteError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var result structureResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode structure response: %w", err)
	}
	record.ID = result.ID

	c.logger.Info("structure written to metadata API",
		"metadata_id", record.MetadataID,
		"structure_id", result.ID)
	return nil
}

// HasStructure asks the metadata API whether a structure already exists
// for the given question.
func (c *MetadataClient) HasStructure(ctx context.Context, metadataID uint) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/questions/%d/structure", c.baseURL, metadataID)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("metadata API unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &RemoteError{StatusCode: resp.StatusCode}
	}
}
