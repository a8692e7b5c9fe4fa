package procmem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/joshuapare/memlens/memory"
)

var (
	// ErrUnsupported is returned by Open on platforms without process_vm_readv.
	ErrUnsupported = errors.New("procmem: unsupported platform")

	// ErrMalformedMaps indicates a /proc/<pid>/maps line that could not be parsed.
	ErrMalformedMaps = errors.New("procmem: malformed maps line")
)

// ParseMaps parses the contents of /proc/<pid>/maps. Sections come back in
// address order; unreadable mappings (no 'r' permission) are skipped.
func ParseMaps(r io.Reader) ([]memory.Section, error) {
	var sections []memory.Section
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		sec, err := parseMapsLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !strings.HasPrefix(sec.Perms, "r") {
			continue
		}
		sections = append(sections, sec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Start < sections[j].Start })
	return sections, nil
}

// parseMapsLine parses "start-end perms offset dev inode [path]".
func parseMapsLine(line string) (memory.Section, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return memory.Section{}, fmt.Errorf("%w: %q", ErrMalformedMaps, line)
	}

	bounds := strings.SplitN(fields[0], "-", 2)
	if len(bounds) != 2 {
		return memory.Section{}, fmt.Errorf("%w: range %q", ErrMalformedMaps, fields[0])
	}
	start, err := strconv.ParseUint(bounds[0], 16, 64)
	if err != nil {
		return memory.Section{}, fmt.Errorf("%w: start %q", ErrMalformedMaps, bounds[0])
	}
	end, err := strconv.ParseUint(bounds[1], 16, 64)
	if err != nil || end < start {
		return memory.Section{}, fmt.Errorf("%w: end %q", ErrMalformedMaps, bounds[1])
	}

	name := ""
	if len(fields) > 5 {
		name = strings.Join(fields[5:], " ")
	}

	return memory.Section{
		Start: memory.Address(start),
		End:   memory.Address(end),
		Perms: fields[1],
		Name:  name,
	}, nil
}

// findSection does a binary search over sorted sections.
func findSection(sections []memory.Section, addr memory.Address) (memory.Section, bool) {
	i := sort.Search(len(sections), func(i int) bool { return sections[i].End > addr })
	if i < len(sections) && sections[i].Contains(addr) {
		return sections[i], true
	}
	return memory.Section{}, false
}
