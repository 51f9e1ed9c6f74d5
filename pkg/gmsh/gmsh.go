// Package gmsh reads the triangle-surface subset of the Gmsh .msh
// text format: a $Nodes block and an $Elements block, keeping only
// three-node triangle elements (type 2) and resolving their 1-based
// node references into geom.Triangle values.
package gmsh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/itohio/wallflux/pkg/geom"
	"github.com/itohio/wallflux/pkg/logger"
	"github.com/itohio/wallflux/pkg/vec3"
)

var log = logger.Component("gmsh")

// Error wraps a .msh parsing failure with the path and the section
// that was being read when it occurred.
type Error struct {
	Path    string
	Section string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gmsh: %s: reading %s: %v", e.Path, e.Section, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(path, section string, err error) error {
	return &Error{Path: path, Section: section, Err: err}
}

const triangleElementType = 2

// Load parses the .msh file at path and builds a geom.Mesh from its
// three-node triangle elements.
func Load(path string, opts ...geom.Option) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("gmsh: open failed")
		return nil, newError(path, "open", err)
	}
	defer f.Close()

	triangles, err := parse(f)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("gmsh: parse failed")
		return nil, newError(path, "body", err)
	}

	m, err := geom.NewMesh(triangles, opts...)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("gmsh: mesh construction failed")
		return nil, newError(path, "mesh", err)
	}
	log.Info().Str("path", path).Int("triangles", len(triangles)).Msg("gmsh: loaded")
	return m, nil
}

// parse scans for $Nodes and $Elements blocks and returns the
// triangle elements found, with nodes resolved by 1-based index.
func parse(r io.Reader) ([]geom.Triangle, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var nodes map[int]vec3.Vec3
	var triangles []geom.Triangle

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "$Nodes":
			n, err := readNodes(sc)
			if err != nil {
				return nil, fmt.Errorf("$Nodes: %w", err)
			}
			nodes = n
		case "$Elements":
			t, err := readElements(sc, nodes)
			if err != nil {
				return nil, fmt.Errorf("$Elements: %w", err)
			}
			triangles = t
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if nodes == nil {
		return nil, fmt.Errorf("no $Nodes block found")
	}
	if triangles == nil {
		return nil, fmt.Errorf("no $Elements block found")
	}
	return triangles, nil
}

func readNodes(sc *bufio.Scanner) (map[int]vec3.Vec3, error) {
	if !sc.Scan() {
		return nil, io.ErrUnexpectedEOF
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("node count: %w", err)
	}

	nodes := make(map[int]vec3.Vec3, count)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, io.ErrUnexpectedEOF
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("node line %d: expected 4 fields, got %d", i, len(fields))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("node id: %w", err)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("node x: %w", err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("node y: %w", err)
		}
		z, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("node z: %w", err)
		}
		nodes[id] = vec3.New(x, y, z)
	}
	return nodes, nil
}

func readElements(sc *bufio.Scanner, nodes map[int]vec3.Vec3) ([]geom.Triangle, error) {
	if !sc.Scan() {
		return nil, io.ErrUnexpectedEOF
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("element count: %w", err)
	}

	var triangles []geom.Triangle
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, io.ErrUnexpectedEOF
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			return nil, fmt.Errorf("element line %d: too few fields", i)
		}
		elemType, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("element type: %w", err)
		}
		if elemType != triangleElementType {
			continue
		}
		ntags, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("element ntags: %w", err)
		}
		nodeStart := 3 + ntags
		if len(fields) < nodeStart+3 {
			return nil, fmt.Errorf("element line %d: missing node references", i)
		}
		ids := make([]int, 3)
		for k := 0; k < 3; k++ {
			id, err := strconv.Atoi(fields[nodeStart+k])
			if err != nil {
				return nil, fmt.Errorf("element node reference: %w", err)
			}
			ids[k] = id
		}
		p1, ok := nodes[ids[0]]
		if !ok {
			return nil, fmt.Errorf("element line %d: unknown node %d", i, ids[0])
		}
		p2, ok := nodes[ids[1]]
		if !ok {
			return nil, fmt.Errorf("element line %d: unknown node %d", i, ids[1])
		}
		p3, ok := nodes[ids[2]]
		if !ok {
			return nil, fmt.Errorf("element line %d: unknown node %d", i, ids[2])
		}
		triangles = append(triangles, geom.New(p1, p2, p3))
	}
	return triangles, nil
}
