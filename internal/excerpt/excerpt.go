package excerpt

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Line is one raw line of the file with its 1-based number.
type Line struct {
	Number int
	Text   string
}

// Read returns the lines within radius of the 1-based line target.
// The window is clipped to the file. A target past the end returns the
// trailing context that exists, which is empty when the file is shorter
// than target-radius.
func Read(path string, target, radius int) ([]Line, error) {
	if target <= 0 {
		return nil, nil
	}
	if radius < 0 {
		radius = 0
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	first := target - radius
	last := target + radius

	var ring []Line
	if radius > 0 {
		ring = make([]Line, radius)
	}
	count := 0
	idx := 0
	var after []Line

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	number := 0
	for scanner.Scan() {
		number++
		line := Line{Number: number, Text: strings.TrimRight(scanner.Text(), "\r")}
		switch {
		case number < target:
			if number < first || radius == 0 {
				continue
			}
			ring[idx] = line
			idx = (idx + 1) % radius
			if count < radius {
				count++
			}
		case number <= last:
			after = append(after, line)
		}
		if number >= last {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	lines := make([]Line, 0, count+len(after))
	if count == radius {
		for i := 0; i < count; i++ {
			lines = append(lines, ring[(idx+i)%radius])
		}
	} else {
		lines = append(lines, ring[:count]...)
	}
	return append(lines, after...), nil
}
