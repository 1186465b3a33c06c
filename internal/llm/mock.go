package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what Generate returns.
type MockClient struct {
	GenerateResponse string
	GenerateError    error

	// Call tracking for assertions
	GenerateCalls []struct{ Prompt, System string }
}

func NewMockClient() *MockClient {
	return &MockClient{
		GenerateResponse: `{"type": "none", "reason": "mock response"}`,
	}
}

func (c *MockClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	c.GenerateCalls = append(c.GenerateCalls, struct{ Prompt, System string }{prompt, system})
	if c.GenerateError != nil {
		return "", c.GenerateError
	}
	return c.GenerateResponse, nil
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.GenerateResponse = `{"type": "none", "reason": "mock response"}`
	c.GenerateError = nil
	c.GenerateCalls = nil
}
