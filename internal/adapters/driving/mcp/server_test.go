package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil resolution service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingResolutionService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		_, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingResolutionService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Resolution: newMockResolutionService(tabetaResolution())})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestServer_InMemorySession(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{
		Resolution: newMockResolutionService(tabetaResolution()),
		Settings:   &mockSettingsService{},
	})
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	assert.Equal(t, serverName, initResult.ServerInfo.Name)
	assert.Contains(t, initResult.Instructions, "resolve_selection")

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"resolve_selection", "remove_result"}, names)

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: currentResolutionURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "食べる【たべる】")
}

func TestServer_Handler(t *testing.T) {
	server, err := NewServer(&Ports{Resolution: newMockResolutionService(tabetaResolution())})
	require.NoError(t, err)
	assert.NotNil(t, server.Handler())
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Resolution: newMockResolutionService(tabetaResolution())})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunHTTP did not return after cancel")
	}
}
