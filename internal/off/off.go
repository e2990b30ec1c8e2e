package off

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/polytope"
)

// Write serializes a concrete polytope in OFF format.
//
// The header is "OFF" for polyhedra and "<d>OFF" for other dimensions.
// The count line lists vertices, faces and edges in the classic OFF
// order, followed by higher element counts. Faces are written as
// vertex cycles reconstructed from their edges; elements above faces
// are written as subelement index lists. The body is implicit.
func Write(w io.Writer, c *polytope.Concrete) error {
	ranks := c.Abs.Ranks()
	rank := c.Abs.Rank()
	dim := rank - 1

	var b strings.Builder
	if dim == 3 {
		b.WriteString("OFF\n")
	} else {
		fmt.Fprintf(&b, "%dOFF\n", dim)
	}

	var counts []int
	switch {
	case dim <= 1:
		counts = []int{len(ranks[1])}
	case dim == 2:
		counts = []int{len(ranks[1]), len(ranks[2])}
	default:
		counts = []int{len(ranks[1]), len(ranks[3]), len(ranks[2])}
		for r := 4; r < rank; r++ {
			counts = append(counts, len(ranks[r]))
		}
	}
	for i, n := range counts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('\n')

	b.WriteString("\n# Vertices\n")
	for _, v := range c.Vertices {
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}

	if dim == 2 {
		b.WriteString("\n# Edges\n")
		for _, e := range ranks[2] {
			writeIndexLine(&b, e.Subs)
		}
	}

	if dim >= 3 {
		b.WriteString("\n# Faces\n")
		for _, f := range ranks[3] {
			writeIndexLine(&b, faceCycle(f, ranks[2]))
		}
		for r := 4; r < rank; r++ {
			fmt.Fprintf(&b, "\n# %s\n", sectionLabel(r))
			for _, e := range ranks[r] {
				writeIndexLine(&b, e.Subs)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile writes one polytope to dir/<safe name>.off and returns the
// path written.
func WriteFile(dir, name string, c *polytope.Concrete) (string, error) {
	path := filepath.Join(dir, FileName(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create off file: %w", err)
	}
	if err := Write(f, c); err != nil {
		f.Close()
		return "", fmt.Errorf("write off file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close off file %s: %w", path, err)
	}
	return path, nil
}

// FileName converts a result name into a safe OFF file name. The name
// is normalized to NFC so that byte-identical names on differently
// normalizing platforms map to the same file.
func FileName(name string) string {
	name = norm.NFC.String(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), " .")
	if out == "" {
		out = "faceting"
	}
	return out + ".off"
}

// faceCycle orders a face's vertices by walking its edge graph. A face
// whose edges do not chain (it can happen on partial structures) falls
// back to however far the walk got.
func faceCycle(face abs.Element, edges abs.ElementList) []int {
	k := len(face.Subs)
	if k == 0 {
		return nil
	}
	used := make([]bool, k)
	used[0] = true
	first := edges[face.Subs[0]].Subs
	out := make([]int, 0, k)
	out = append(out, first[0])
	cur := first[1]
	for len(out) < k {
		out = append(out, cur)
		found := false
		for i, e := range face.Subs {
			if used[i] {
				continue
			}
			s := edges[e].Subs
			switch cur {
			case s[0]:
				cur, used[i], found = s[1], true, true
			case s[1]:
				cur, used[i], found = s[0], true, true
			}
			if found {
				break
			}
		}
		if !found {
			break
		}
	}
	return out
}

func writeIndexLine(b *strings.Builder, subs []int) {
	b.WriteString(strconv.Itoa(len(subs)))
	for _, s := range subs {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(s))
	}
	b.WriteByte('\n')
}

func sectionLabel(rank int) string {
	if rank == 4 {
		return "Cells"
	}
	return fmt.Sprintf("%d-elements", rank-1)
}
