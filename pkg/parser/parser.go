package parser

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// maxLineSize bounds scanner buffers; chat exports occasionally contain very
// long pasted lines.
const maxLineSize = 1024 * 1024

// Scanner reads transcript files and extracts URL tasks from them.
type Scanner struct{}

// NewScanner creates a transcript scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan reads every transcript file in order and returns all extracted URL
// tasks, the per-line parse failures collected along the way, and scan
// statistics. Line numbers restart at 1 for each file.
func (s *Scanner) Scan(ctx context.Context, paths []string) (*ScanResult, error) {
	result := &ScanResult{Sources: paths}

	for _, path := range paths {
		if err := s.scanFile(ctx, path, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string, result *ScanResult) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided transcript paths are expected
	if err != nil {
		return fmt.Errorf("opening transcript %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lineNum++
		result.Stats.LinesRead++
		raw := scanner.Text()

		msg, failure, skipped := ParseLine(raw, lineNum)
		switch {
		case skipped:
			continue
		case failure != nil:
			result.Failures = append(result.Failures, *failure)
		default:
			result.Stats.MessagesMatched++
			tasks := msg.Tasks(raw, lineNum)
			result.Stats.URLsFound += len(tasks)
			result.Tasks = append(result.Tasks, tasks...)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return nil
}
