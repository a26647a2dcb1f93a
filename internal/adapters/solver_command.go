package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mamba-plan/internal/ports"
	"mamba-plan/internal/types"
)

// SolverCommandAdapter runs an external solver. The request is written as
// JSON to its stdin and the answer is read from its stdout:
//
//	{"link": [[channel, filename, metadata]], "unlink": [[channel, filename]], "error": ""}
//
// metadata is either a JSON object or a string holding one.
type SolverCommandAdapter struct {
	Command []string
}

func NewSolverCommandAdapter(command []string) SolverCommandAdapter {
	return SolverCommandAdapter{Command: command}
}

type solverResponse struct {
	Link   [][]json.RawMessage `json:"link"`
	Unlink [][]string          `json:"unlink"`
	Error  string              `json:"error"`
}

func (a SolverCommandAdapter) Solve(ctx context.Context, request types.SolverRequest) (types.SolverResult, error) {
	if len(a.Command) == 0 || strings.TrimSpace(a.Command[0]) == "" {
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("solver command is not configured")
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode solver request").
			WithCause(err)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Ctx(ctx).Debug().Strs("command", a.Command).Msg("running solver")
	if err := cmd.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			diagnostic = solverErrorText(stdout.Bytes())
		}
		if diagnostic == "" {
			diagnostic = fmt.Sprintf("solver command %s failed", a.Command[0])
		}
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(diagnostic).
			WithCause(err)
	}
	return decodeSolverResponse(stdout.Bytes())
}

func solverErrorText(data []byte) string {
	var response solverResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return ""
	}
	return strings.TrimSpace(response.Error)
}

func decodeSolverResponse(data []byte) (types.SolverResult, error) {
	var response solverResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode solver response").
			WithCause(err)
	}
	if message := strings.TrimSpace(response.Error); message != "" {
		return types.SolverResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(message)
	}
	result := types.SolverResult{
		Link:   make([]types.LinkItem, 0, len(response.Link)),
		Unlink: make([]types.UnlinkItem, 0, len(response.Unlink)),
	}
	for i, entry := range response.Unlink {
		if len(entry) != 2 {
			return types.SolverResult{}, malformedSolverEntry("unlink", i)
		}
		result.Unlink = append(result.Unlink, types.UnlinkItem{Channel: entry[0], Filename: entry[1]})
	}
	for i, entry := range response.Link {
		if len(entry) != 3 {
			return types.SolverResult{}, malformedSolverEntry("link", i)
		}
		var channel, filename string
		if err := json.Unmarshal(entry[0], &channel); err != nil {
			return types.SolverResult{}, malformedSolverEntry("link", i)
		}
		if err := json.Unmarshal(entry[1], &filename); err != nil {
			return types.SolverResult{}, malformedSolverEntry("link", i)
		}
		metadata := strings.TrimSpace(string(entry[2]))
		if strings.HasPrefix(metadata, `"`) {
			if err := json.Unmarshal(entry[2], &metadata); err != nil {
				return types.SolverResult{}, malformedSolverEntry("link", i)
			}
		}
		result.Link = append(result.Link, types.LinkItem{
			Channel:  channel,
			Filename: filename,
			Metadata: metadata,
		})
	}
	return result, nil
}

func malformedSolverEntry(kind string, index int) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("malformed %s entry %d in solver response", kind, index))
}

var _ ports.SolverPort = SolverCommandAdapter{}
