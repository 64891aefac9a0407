package core

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	Queries []string
	Params  []map[string]interface{}

	// Results maps a query string to the result it should return; queries
	// not in the map get an empty result.
	Results map[string]neo4j.EagerResult

	// FailUUIDs makes any query carrying one of these uuids fail.
	FailUUIDs map[string]bool

	Err error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)

	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if id, ok := params["uuid"].(string); ok && m.FailUUIDs[id] {
		return neo4j.EagerResult{}, fmt.Errorf("store rejected operation on %s", id)
	}
	if result, ok := m.Results[query]; ok {
		return result, nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

type MockLLM struct {
	Response      string
	ResponseQueue []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func contactRecord(uuid, name, email, phone string) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"uuid", "name", "email", "phone", "company_uuid", "role", "contact_type", "avatar_url"},
		Values: []interface{}{uuid, name, email, phone, "co-1", "buyer", "client", ""},
	}
}

func leadRecord(uuid, title, contactUUID, stage string) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"uuid", "title", "contact_uuid", "company_uuid", "amount", "stage", "notes"},
		Values: []interface{}{uuid, title, contactUUID, "", float64(1000), stage, "some notes"},
	}
}

func deletedRecord(n int64) *neo4j.Record {
	return &neo4j.Record{Keys: []string{"deleted"}, Values: []interface{}{n}}
}
