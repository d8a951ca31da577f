package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/richard-senior/livexg/pkg/protocol"
	"github.com/richard-senior/livexg/pkg/transport"
	"github.com/richard-senior/livexg/pkg/util/livexg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectionArgs = `{"minutes_played":70,"home_score":1,"away_score":0,"home_xg":1.31,"away_xg":0.57,` +
	`"home_goals_scored":1.7,"home_goals_conceded":1.2,"home_conversion":0.1,` +
	`"away_goals_scored":1.1,"away_goals_conceded":1.5,"away_conversion":0.1,` +
	`"pre_over25_odds":1.9,"pre_under25_odds":1.9,"live_over_odds":1.6,"live_under_odds":2.2,` +
	`"scenarios":["baseline"],"momentum":false}`

func newTestService(t *testing.T) *livexg.Service {
	t.Helper()
	store, err := livexg.OpenPresetStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc, err := livexg.NewService(livexg.DefaultLivexgConfig(), store)
	require.NoError(t, err)
	return svc
}

// run feeds the lines through a server and returns every response written
func run(t *testing.T, lines ...string) []*protocol.JsonRpcResponse {
	t.Helper()
	var out bytes.Buffer
	tr := transport.NewStreamTransport(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	s := NewServer(tr, newTestService(t))
	require.NoError(t, s.ProcessRequests())

	var responses []*protocol.JsonRpcResponse
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		resp, err := protocol.ParseJsonRpcResponse([]byte(line))
		require.NoError(t, err, line)
		responses = append(responses, resp)
	}
	return responses
}

func TestInitializeHandshake(t *testing.T) {
	responses := run(t,
		`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`,
	)
	require.Len(t, responses, 2)

	var init protocol.InitializeResult
	require.NoError(t, json.Unmarshal(responses[0].Result, &init))
	assert.Equal(t, "2025-03-26", init.ProtocolVersion)
	assert.Equal(t, Name, init.ServerInfo.Name)
	assert.Contains(t, init.Capabilities, "tools")

	var list protocol.ToolsResponse
	require.NoError(t, json.Unmarshal(responses[1].Result, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"live_goals_projection", "league_presets"}, names)
}

func TestToolsCallProjection(t *testing.T) {
	responses := run(t,
		`{"jsonrpc":"2.0","id":"p1","method":"tools/call","params":{"name":"live_goals_projection","arguments":`+projectionArgs+`}}`,
	)
	require.Len(t, responses, 1)
	require.Nil(t, responses[0].Error)
	assert.Equal(t, "p1", responses[0].ID)

	var result struct {
		Content           []protocol.ToolContent `json:"content"`
		StructuredContent struct {
			Report livexg.Report `json:"report"`
		} `json:"structuredContent"`
	}
	require.NoError(t, json.Unmarshal(responses[0].Result, &result))
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)

	report := result.StructuredContent.Report
	require.Len(t, report.Scenarios, 1)
	assert.Equal(t, 0.536, report.Scenarios[0].Lambda)
	assert.Equal(t, 0.585, report.Scenarios[0].P0)
	assert.Equal(t, livexg.EdgeValue, report.Scenarios[0].EdgeUnder)
}

func TestToolsCallWithPrefixedName(t *testing.T) {
	responses := run(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"mcp___live_goals_projection","arguments":`+projectionArgs+`}}`,
	)
	require.Len(t, responses, 1)
	assert.Nil(t, responses[0].Error)
}

func TestFinishedMatchIsAToolError(t *testing.T) {
	args := strings.Replace(projectionArgs, `"minutes_played":70`, `"minutes_played":95`, 1)
	responses := run(t,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"live_goals_projection","arguments":`+args+`}}`,
	)
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, protocol.ErrToolExecutionFailed, responses[0].Error.Code)
	assert.Contains(t, responses[0].Error.Message, "match already finished")
}

func TestProtocolErrors(t *testing.T) {
	responses := run(t,
		`{this is not json`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"meme","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	)
	require.Len(t, responses, 4)

	assert.Equal(t, protocol.ErrParse, responses[0].Error.Code)
	assert.Nil(t, responses[0].ID)
	assert.Equal(t, protocol.ErrMethodNotFound, responses[1].Error.Code)
	assert.Equal(t, protocol.ErrInvalidParams, responses[2].Error.Code)
	assert.Nil(t, responses[3].Error)
}

func TestPresetsThroughTools(t *testing.T) {
	responses := run(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"league_presets","arguments":{"command":"save","name":"EPL","average_goals":2.9,"home_advantage":1.2}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"league_presets","arguments":{"command":"list"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"live_goals_projection","arguments":`+
			strings.Replace(projectionArgs, `{`, `{"league":"epl",`, 1)+`}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"league_presets","arguments":{"command":"get","name":"serie-a"}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"league_presets","arguments":{"command":"get","name":"EPLL"}}}`,
	)
	require.Len(t, responses, 5)
	for _, r := range responses[:3] {
		require.Nil(t, r.Error, r.ID)
	}
	assert.Contains(t, string(responses[1].Result), `\"name\": \"epl\"`)

	var result struct {
		StructuredContent struct {
			Raw livexg.Output `json:"raw"`
		} `json:"structuredContent"`
	}
	require.NoError(t, json.Unmarshal(responses[2].Result, &result))
	assert.Equal(t, 1.2, result.StructuredContent.Raw.Adjusters.HomeAdvantage)

	require.NotNil(t, responses[3].Error)
	assert.Contains(t, responses[3].Error.Message, "league preset not found")
	assert.NotContains(t, responses[3].Error.Message, "did you mean")

	require.NotNil(t, responses[4].Error)
	assert.Contains(t, responses[4].Error.Message, `did you mean "epl"`)
}
