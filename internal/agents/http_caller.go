package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"apiforge/internal/models"
	"apiforge/internal/results"
)

// HTTPCaller talks to an agent gateway that accepts {message, agent_id} and answers
// {success, response: {result}, error}.
type HTTPCaller struct {
	endpoint string
	client   *http.Client
}

func NewHTTPCaller(endpoint string, client *http.Client) *HTTPCaller {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPCaller{endpoint: endpoint, client: client}
}

type agentRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

type agentResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Response struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
	} `json:"response"`
}

func (c *HTTPCaller) Call(ctx context.Context, message, agentID string) (*models.AgentResult, error) {
	body, err := json.Marshal(agentRequest{Message: message, AgentID: agentID})
	if err != nil {
		return nil, fmt.Errorf("encoding agent request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling agent %s: %w", agentID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading agent response: %w", err)
	}

	var decoded agentResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := strings.TrimSpace(decoded.Error)
		if decodeErr != nil || reason == "" {
			reason = fmt.Sprintf("agent request failed: %s", resp.Status)
		}
		return &models.AgentResult{Success: false, Error: reason}, nil
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding agent response: %w", decodeErr)
	}
	if !decoded.Success {
		return &models.AgentResult{Success: false, Error: decoded.Error}, nil
	}

	var result any
	if len(decoded.Response.Result) > 0 {
		result, err = results.DecodeJSON(decoded.Response.Result)
		if err != nil {
			return nil, fmt.Errorf("decoding agent result: %w", err)
		}
	}
	return &models.AgentResult{Success: true, Result: result}, nil
}
