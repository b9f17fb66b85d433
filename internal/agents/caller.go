package agents

import (
	"context"
	"fmt"

	"apiforge/internal/models"
)

// Caller sends one message to a remote agent and returns its envelope.
// A returned error means the call itself broke (transport, decoding); an agent that
// answered with a failure is reported through AgentResult.Success instead.
type Caller interface {
	Call(ctx context.Context, message, agentID string) (*models.AgentResult, error)
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, message, agentID string) (*models.AgentResult, error)

func (f CallerFunc) Call(ctx context.Context, message, agentID string) (*models.AgentResult, error) {
	return f(ctx, message, agentID)
}

// Publisher delivers a generated integration to a repository.
type Publisher interface {
	Publish(ctx context.Context, payload PublishPayload, agentID string) (*models.AgentResult, error)
}

// AgentPublisher publishes by messaging the publishing agent.
type AgentPublisher struct {
	caller Caller
}

func NewAgentPublisher(caller Caller) *AgentPublisher {
	return &AgentPublisher{caller: caller}
}

func (p *AgentPublisher) Publish(ctx context.Context, payload PublishPayload, agentID string) (*models.AgentResult, error) {
	message, err := BuildPublishMessage(payload)
	if err != nil {
		return nil, err
	}
	return p.caller.Call(ctx, message, agentID)
}

// Router dispatches calls by agent id, falling back to a default caller.
type Router struct {
	routes   map[string]Caller
	fallback Caller
}

func NewRouter(fallback Caller) *Router {
	return &Router{routes: make(map[string]Caller), fallback: fallback}
}

// Handle registers caller for agentID and returns the router for chaining.
func (r *Router) Handle(agentID string, caller Caller) *Router {
	r.routes[agentID] = caller
	return r
}

func (r *Router) Call(ctx context.Context, message, agentID string) (*models.AgentResult, error) {
	if c, ok := r.routes[agentID]; ok {
		return c.Call(ctx, message, agentID)
	}
	if r.fallback == nil {
		return nil, fmt.Errorf("no caller registered for agent %s", agentID)
	}
	return r.fallback.Call(ctx, message, agentID)
}
