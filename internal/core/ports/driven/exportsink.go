package driven

import "context"

// ExportSink stores export artifacts. Implementations must never
// leave a partially written artifact in a readable state: on failure
// the named artifact must not exist.
type ExportSink interface {
	// Write persists content under the given artifact name and
	// returns the location of the produced artifact.
	Write(ctx context.Context, name string, content []byte) (string, error)
}
