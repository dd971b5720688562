package core

import (
	"context"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

type upsertCall struct {
	Name     string
	NodeType string
	Props    map[string]any
}

type runCall struct {
	Query  string
	Params map[string]any
}

type MockGraph struct {
	Upserts   []upsertCall
	Runs      []runCall
	UpsertErr error
	RunErr    error
}

func (m *MockGraph) Upsert(ctx context.Context, name, nodeType string, props map[string]any) (map[string]any, error) {
	m.Upserts = append(m.Upserts, upsertCall{Name: name, NodeType: nodeType, Props: props})
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}
	return props, nil
}

func (m *MockGraph) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	m.Runs = append(m.Runs, runCall{Query: query, Params: params})
	if m.RunErr != nil {
		return nil, m.RunErr
	}
	return []map[string]any{}, nil
}
