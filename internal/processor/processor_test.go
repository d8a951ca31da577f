package processor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/richard-senior/livexg/pkg/util/livexg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `{"requestId":"cli-1","minutes_played":70,"home_score":1,"away_score":0,"home_xg":1.31,"away_xg":0.57,
	"home_goals_scored":1.7,"home_goals_conceded":1.2,"home_conversion":0.1,
	"away_goals_scored":1.1,"away_goals_conceded":1.5,"away_conversion":0.1,
	"pre_over25_odds":1.9,"pre_under25_odds":1.9,"live_over_odds":1.6,"live_under_odds":2.2,
	"scenarios":["baseline"],"momentum":false%s}`

func newTestService(t *testing.T) *livexg.Service {
	t.Helper()
	svc, err := livexg.NewService(livexg.DefaultLivexgConfig(), nil)
	require.NoError(t, err)
	return svc
}

// withFields appends fields to the snapshot, later keys win
func withFields(extra string) []byte {
	return []byte(fmt.Sprintf(snapshot, extra))
}

func TestProcessRequest(t *testing.T) {
	body, err := ProcessRequest(newTestService(t), withFields(`,"raw":true`))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "cli-1", resp.RequestID)
	require.NotNil(t, resp.Report)
	require.Len(t, resp.Report.Scenarios, 1)
	assert.Equal(t, 0.536, resp.Report.Scenarios[0].Lambda)
	assert.Equal(t, 28.8, resp.Report.Scenarios[0].EVUnderPercent)
	require.NotNil(t, resp.Raw)
}

func TestProcessRequestErrors(t *testing.T) {
	svc := newTestService(t)

	testCases := []struct {
		name  string
		input []byte
		code  string
	}{
		{"malformed", []byte(`{"minutes_played":`), CodeInvalidRequest},
		{"unknown field", []byte(`{"minute":70}`), CodeInvalidRequest},
		{"kickoff", withFields(`,"match_duration":90,"minutes_played":0`), CodeInvalidDuration},
		{"finished", withFields(`,"match_duration":70`), CodeMatchFinished},
		{"no store", withFields(`,"league":"epl"`), CodeRejected},
		{"bad tier", withFields(`,"scoreline_tier":"brutal"`), CodeRejected},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := ProcessRequest(svc, tc.input)
			require.Error(t, err)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tc.code, reqErr.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
