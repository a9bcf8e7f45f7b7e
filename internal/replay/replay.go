package replay

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// Source is a queue of validated update lines loaded from a replay file.
// Lines that fail minimal shape validation are skipped at load time and never
// reach the processor.
type Source struct {
	lines   []string
	pos     int
	skipped int
}

// LoadFile reads a replay file and queues its valid update lines in order.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	src := &Source{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := domain.ParseUpdateLine(line); err != nil {
			src.skipped++
			logger.Get().Warn("Skipping malformed update line",
				zap.String("line", line),
				zap.Error(err),
			)
			continue
		}
		src.lines = append(src.lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read replay file: %w", err)
	}

	logger.Get().Info("Replay file loaded",
		zap.String("file", path),
		zap.Int("updates", len(src.lines)),
		zap.Int("skipped", src.skipped),
	)
	return src, nil
}

// Next returns the next queued line, or false when the source is drained.
func (s *Source) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

// Total returns the number of valid lines loaded.
func (s *Source) Total() int {
	return len(s.lines)
}

// Skipped returns the number of lines rejected at load time.
func (s *Source) Skipped() int {
	return s.skipped
}

// Run submits one line per interval until the source is drained or the
// context is canceled. A failed submission is logged and the run continues
// with the next line.
func Run(ctx context.Context, src *Source, interval time.Duration, submit func(line string) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		line, ok := src.Next()
		if !ok {
			logger.Get().Info("Replay complete", zap.Int("updates", src.Total()))
			return nil
		}

		if err := submit(line); err != nil {
			logger.Get().Error("Failed to submit update line",
				zap.String("line", line),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
