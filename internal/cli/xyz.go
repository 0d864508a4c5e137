package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/pointskel/geom"
	"github.com/katalvlaran/pointskel/skeleton"
)

// ErrBadXYZ indicates a malformed line in a point file.
var ErrBadXYZ = errors.New("cli: malformed xyz line")

// readXYZ parses whitespace-separated points, one per line. Blank lines and
// lines starting with '#' are skipped; columns after the third are ignored.
func readXYZ(r io.Reader) ([]geom.Vec, error) {
	var pts []geom.Vec
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w %d: want 3 coordinates, got %d", ErrBadXYZ, line, len(fields))
		}
		var xyz [3]float64
		for i := range xyz {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrBadXYZ, line, err)
			}
			xyz[i] = v
		}
		pts = append(pts, geom.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return pts, nil
}

func readXYZFile(path string) ([]geom.Vec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readXYZ(f)
}

// writeXYZ writes one "x y z" line per point.
func writeXYZ(w io.Writer, pts []geom.Vec) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	return bw.Flush()
}

// writeSkeleton writes a header and one "index x y z parent radius" line per node.
func writeSkeleton(w io.Writer, sk *skeleton.Skeleton) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# index x y z parent radius")
	for i, n := range sk.Nodes {
		fmt.Fprintf(bw, "%d %g %g %g %d %g\n", i, n.X, n.Y, n.Z, sk.Parents[i], sk.Radii[i])
	}

	return bw.Flush()
}

// createOutput opens path for writing, or returns fallback for "" and "-".
func createOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
