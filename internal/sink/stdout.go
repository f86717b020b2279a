package sink

import (
	"context"
	"encoding/json"
	"io"

	"github.com/galois26/medal-bot/internal/model"
)

// stdoutSink prints the record that would be posted. Used for dry runs.
type stdoutSink struct {
	w io.Writer
}

func NewStdout(w io.Writer) Sink {
	return &stdoutSink{w: w}
}

func (s *stdoutSink) Name() string { return "stdout" }

func (s *stdoutSink) Publish(_ context.Context, p model.Post) (Receipt, error) {
	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newRecord(p)); err != nil {
		return Receipt{}, err
	}
	return Receipt{DryRun: true}, nil
}
