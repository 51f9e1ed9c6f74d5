// Package eqdsk reads the free-form, whitespace-separated eqdsk text
// format used to ship tokamak equilibrium reconstructions, and builds
// an equilibrium.Equilibrium from it. The error wrapping style is
// grounded on the teacher module's x/marshaller/types.Error.
package eqdsk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/itohio/wallflux/pkg/equilibrium"
	"github.com/itohio/wallflux/pkg/logger"
)

var log = logger.Component("eqdsk")

// Error wraps an eqdsk parsing failure with the path and the field
// that was being read when it occurred.
type Error struct {
	Path  string
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("eqdsk: %s: reading %s: %v", e.Path, e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(path, field string, err error) error {
	return &Error{Path: path, Field: field, Err: err}
}

// Load parses the eqdsk file at path and builds an Equilibrium.
func Load(path string) (*equilibrium.Equilibrium, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("eqdsk: open failed")
		return nil, newError(path, "open", err)
	}
	defer f.Close()

	e, err := parse(f)
	if err != nil {
		log.Error().Str("path", path).Err(err).Msg("eqdsk: parse failed")
		return nil, newError(path, "body", err)
	}
	nr, nz := e.Shape()
	log.Info().Str("path", path).Int("NR", nr).Int("Nz", nz).Msg("eqdsk: loaded")
	return e, nil
}

// parse consumes the eqdsk token stream per the documented field
// order: a comment token, three header integers (case_code, NR, Nz),
// five box-geometry doubles, five axis-and-field doubles, five
// current-and-ignored doubles, five further ignored doubles, 4*NR
// ignored profile-function doubles, then NR*Nz row-major psi values
// (R fastest). All psi values are negated on ingest so that
// psiAxis > psiEdge holds downstream.
func parse(r io.Reader) (*equilibrium.Equilibrium, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	tok := &tokenizer{sc: sc}

	comment, err := tok.str()
	if err != nil {
		return nil, fmt.Errorf("comment: %w", err)
	}
	_, err = tok.int() // case_code, unused downstream
	if err != nil {
		return nil, fmt.Errorf("case_code: %w", err)
	}
	nr, err := tok.int()
	if err != nil {
		return nil, fmt.Errorf("NR: %w", err)
	}
	nz, err := tok.int()
	if err != nil {
		return nil, fmt.Errorf("Nz: %w", err)
	}

	rBoxLength, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("rBoxLength: %w", err)
	}
	zBoxLength, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("zBoxLength: %w", err)
	}
	if _, err := tok.float(); err != nil { // r0Exp, unused
		return nil, fmt.Errorf("r0Exp: %w", err)
	}
	rBoxLeft, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("rBoxLeft: %w", err)
	}
	zBoxMid, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("zBoxMid: %w", err)
	}

	r0, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("R0: %w", err)
	}
	z0, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("z0: %w", err)
	}
	psiAxis, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("psiAxis: %w", err)
	}
	psiEdge, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("psiEdge: %w", err)
	}
	btor, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("Btor: %w", err)
	}

	ip, err := tok.float()
	if err != nil {
		return nil, fmt.Errorf("Ip: %w", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := tok.float(); err != nil {
			return nil, fmt.Errorf("ignored field after Ip (%d): %w", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		if _, err := tok.float(); err != nil {
			return nil, fmt.Errorf("ignored field block (%d): %w", i, err)
		}
	}
	for i := 0; i < 4*nr; i++ {
		if _, err := tok.float(); err != nil {
			return nil, fmt.Errorf("profile function doubles (%d): %w", i, err)
		}
	}

	psi := make([]float64, nr*nz)
	for i := range psi {
		v, err := tok.float()
		if err != nil {
			return nil, fmt.Errorf("psi[%d]: %w", i, err)
		}
		psi[i] = -v
	}

	rGrid := make([]float64, nr)
	for i := range rGrid {
		rGrid[i] = rBoxLeft + float64(i)*rBoxLength/float64(nr-1)
	}
	zGrid := make([]float64, nz)
	for j := range zGrid {
		zGrid[j] = zBoxMid - zBoxLength/2 + float64(j)*zBoxLength/float64(nz-1)
	}

	return equilibrium.New(comment, rGrid, zGrid, psi, r0, z0, psiAxis, psiEdge, btor, ip)
}

// tokenizer wraps a bufio.Scanner split on whitespace, giving typed
// accessors over the free-form eqdsk token stream.
type tokenizer struct {
	sc *bufio.Scanner
}

func (t *tokenizer) str() (string, error) {
	if !t.sc.Scan() {
		return "", t.eofErr()
	}
	return t.sc.Text(), nil
}

func (t *tokenizer) int() (int, error) {
	s, err := t.str()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as int: %w", s, err)
	}
	return v, nil
}

func (t *tokenizer) float() (float64, error) {
	s, err := t.str()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as float: %w", s, err)
	}
	return v, nil
}

func (t *tokenizer) eofErr() error {
	if err := t.sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
