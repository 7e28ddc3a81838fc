// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/streamdex-cli/streamdex/media"
)

// Output is the machine-readable result envelope. Its JSON schema is
// exposed through the search command's --output-schema flag.
type Output struct {
	Query   string             `json:"query"`
	Kind    string             `json:"kind"`
	Status  string             `json:"status"`
	Failed  []string           `json:"failed,omitempty"`
	Result  []*media.Candidate `json:"result"`
	Streams []*media.Candidate `json:"streams,omitempty"`
}

func asJson(output *Output) ([]byte, error) {
	if output.Result == nil {
		output.Result = []*media.Candidate{}
	}
	return json.Marshal(output)
}
