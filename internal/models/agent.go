package models

// AgentResult is the envelope returned by one remote agent call.
// Result holds response.result verbatim and may be a string, a map or anything JSON can carry.
type AgentResult struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PipelineSnapshot is what the UI polls to render busy indicators.
type PipelineSnapshot struct {
	Generating      bool   `json:"generating"`
	GenerationPhase string `json:"generationPhase"`
	Publishing      bool   `json:"publishing"`
	PublishPhase    string `json:"publishPhase"`
	ActiveAgentID   string `json:"activeAgentId"`
}
