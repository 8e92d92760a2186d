package mcp

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Discard()
	os.Exit(m.Run())
}

func TestNewServer(t *testing.T) {
	t.Run("nil catalog service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, "1.0.0")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Catalog: &mockCatalogService{},
			Query:   &mockQueryService{},
			Prompt:  &mockPromptService{},
		}
		server, err := NewServer(ports, "1.0.0")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"empty", &Ports{}, ErrMissingCatalogService},
		{"catalog only", &Ports{Catalog: &mockCatalogService{}}, ErrMissingQueryService},
		{"no prompt", &Ports{Catalog: &mockCatalogService{}, Query: &mockQueryService{}}, ErrMissingPromptService},
		{"all ports", &Ports{
			Catalog: &mockCatalogService{},
			Query:   &mockQueryService{},
			Prompt:  &mockPromptService{},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
