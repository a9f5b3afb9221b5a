// Package netparams reads network parameter and sample files: flattened
// real-valued arrays of known length, addressed by tensor name. The format is
// line oriented: `@name` opens a tensor, every following line carries one
// decimal value, `#` starts a comment.
package netparams

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const CommentMarker = "#"

// Set is a collection of named flattened arrays, in file order.
type Set struct {
	arrays map[string][]float64
	order  []string
}

// FromFile reads and parses a parameter file.
func FromFile(path string) (*Set, error) {
	txt, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(string(txt))
}

func parse(txt string) (*Set, error) {
	s := &Set{arrays: make(map[string][]float64)}

	scanner := bufio.NewScanner(strings.NewReader(txt))
	lineNum := 0
	current := ""
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if commentPos := strings.Index(line, CommentMarker); commentPos != -1 {
			line = line[:commentPos]
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		if strings.HasPrefix(line, "@") {
			name := strings.TrimSpace(line[1:])
			if name == "" {
				return nil, fmt.Errorf("empty tensor name in line %d", lineNum)
			}
			if _, ok := s.arrays[name]; ok {
				return nil, fmt.Errorf("duplicate tensor %q in line %d", name, lineNum)
			}
			s.arrays[name] = []float64{}
			s.order = append(s.order, name)
			current = name
			continue
		}

		if current == "" {
			return nil, fmt.Errorf("value before any @tensor header in line %d", lineNum)
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float64 in line %d: %v", line, lineNum, err)
		}
		s.arrays[current] = append(s.arrays[current], v)
	}
	return s, nil
}

func (s *Set) String() string {
	return fmt.Sprintf("Parameter set with %d tensors", len(s.order))
}

// NumArrays returns the number of tensors in the set.
func (s *Set) NumArrays() int {
	return len(s.order)
}

// Names returns the tensor names in file order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Array returns the flattened values of the named tensor.
func (s *Set) Array(name string) ([]float64, error) {
	arr, ok := s.arrays[name]
	if !ok {
		return nil, fmt.Errorf("no tensor %q in this set", name)
	}
	return arr, nil
}

// First returns the first tensor of the file. Sample files carry a single
// unnamed-by-convention tensor, so callers use First instead of guessing a
// name.
func (s *Set) First() ([]float64, error) {
	if len(s.order) == 0 {
		return nil, fmt.Errorf("empty set")
	}
	return s.arrays[s.order[0]], nil
}
