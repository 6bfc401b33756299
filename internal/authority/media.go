package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadAudioNote uploads a recorded audio note for a booking as multipart
// form data. Best-effort: the orchestrator logs and continues on failure.
func (c *Client) UploadAudioNote(ctx context.Context, token, bookingID, fileName string, audio io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, c.defaultTimeout)
	defer cancel()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", fileName)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return fmt.Errorf("failed to read audio note: %w", err)
	}
	if err := writer.WriteField("booking_id", bookingID); err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/client/audio-notes", &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if jsonErr := json.Unmarshal(respBody, &env); jsonErr == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	return nil
}
