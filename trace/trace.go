package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OpKind identifies a trace operation.
type OpKind byte

const (
	OpAlloc   OpKind = 'a'
	OpRealloc OpKind = 'r'
	OpFree    OpKind = 'f'
)

// Op is one allocator operation addressed by allocation id.
type Op struct {
	Kind OpKind
	ID   int
	Size uint64 // unused for OpFree
}

// Trace is a parsed workload.
type Trace struct {
	HeapHint uint64 // suggested heap size; advisory only
	IDs      int    // size of the id table
	Weight   int    // scoring weight; advisory only
	Ops      []Op
}

// ParseFile reads and parses the trace at path.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

// Parse reads a trace from r. Errors are annotated with the line number.
func Parse(r io.Reader) (*Trace, error) {
	sc := bufio.NewScanner(r)
	line := 0

	next := func() (string, error) {
		for sc.Scan() {
			line++
			s := strings.TrimSpace(sc.Text())
			if s != "" {
				return s, nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	header := func(name string) (uint64, error) {
		s, err := next()
		if err != nil {
			return 0, fmt.Errorf("line %d: missing %s header: %w", line+1, name, err)
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: bad %s header %q", line, name, s)
		}
		return v, nil
	}

	hint, err := header("heap-size")
	if err != nil {
		return nil, err
	}
	ids, err := header("id-count")
	if err != nil {
		return nil, err
	}
	opCount, err := header("op-count")
	if err != nil {
		return nil, err
	}
	weight, err := header("weight")
	if err != nil {
		return nil, err
	}

	tr := &Trace{
		HeapHint: hint,
		IDs:      int(ids),
		Weight:   int(weight),
		Ops:      make([]Op, 0, opCount),
	}

	for {
		s, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		fields := strings.Fields(s)
		op, err := parseOp(fields, tr.IDs)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tr.Ops = append(tr.Ops, op)
	}

	if uint64(len(tr.Ops)) != opCount {
		return nil, fmt.Errorf("header promises %d ops, trace has %d", opCount, len(tr.Ops))
	}
	return tr, nil
}

func parseOp(fields []string, ids int) (Op, error) {
	if len(fields) < 2 {
		return Op{}, fmt.Errorf("malformed op %q", strings.Join(fields, " "))
	}

	var op Op
	switch fields[0] {
	case "a":
		op.Kind = OpAlloc
	case "r":
		op.Kind = OpRealloc
	case "f":
		op.Kind = OpFree
	default:
		return Op{}, fmt.Errorf("unknown op %q", fields[0])
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil || id < 0 {
		return Op{}, fmt.Errorf("bad id %q", fields[1])
	}
	if id >= ids {
		return Op{}, fmt.Errorf("id %d outside id table (size %d)", id, ids)
	}
	op.ID = id

	if op.Kind == OpFree {
		return op, nil
	}
	if len(fields) != 3 {
		return Op{}, fmt.Errorf("op %q wants a size", fields[0])
	}
	size, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Op{}, fmt.Errorf("bad size %q", fields[2])
	}
	op.Size = size
	return op, nil
}
