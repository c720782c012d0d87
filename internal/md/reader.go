package md

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ReadSamples parses one integer per line from r. Blank lines and lines
// starting with '#' are skipped.
func ReadSamples(ctx context.Context, r io.Reader, source string, handler SampleHandler) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		handler(Sample{
			Source:    source,
			Timestamp: time.Now().UTC(),
			Value:     value,
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read samples: %w", err)
	}
	return nil
}
