package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/coolbeans/luxlex/pkg/tools"
)

// stdio framing: one JSON request object per input line, one JSON
// response object per output line.
type stdioRequest struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params,omitempty"`
}

type stdioResponse struct {
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// maxStdioLine bounds one request line.
const maxStdioLine = 1 << 20

// RunStdio serves tool calls over a line-oriented stream until EOF or
// context cancellation. Malformed lines produce error responses, never
// terminate the loop.
func RunStdio(ctx context.Context, registry *tools.Registry, input io.Reader, output io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdioLine)
	encoder := json.NewEncoder(output)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var request stdioRequest
		if err := json.Unmarshal(line, &request); err != nil {
			if err := encoder.Encode(stdioResponse{OK: false, Error: "malformed request: " + err.Error()}); err != nil {
				return err
			}
			continue
		}

		result, err := registry.Call(ctx, request.Tool, request.Params)
		response := stdioResponse{OK: err == nil, Result: result}
		if err != nil {
			response.Result = nil
			response.Error = err.Error()
		}
		if err := encoder.Encode(response); err != nil {
			return err
		}
	}
	return scanner.Err()
}
