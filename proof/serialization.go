// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// Parameter files are three hex lines (g, h, n); proof files are the 15
// scalar lines followed by the two length-prefixed vectors and the two final
// inner-product scalars. The format is shared with the external prover.

// SaveParameters writes the parameter file.
func SaveParameters(path string, p Parameters) error {
	lines := []string{encodeHex(p.G), encodeHex(p.H), encodeHex(p.N)}
	return writeLines(path, lines)
}

// LoadParameters reads a parameter file. The result is parsed, not
// validated; callers check Validate before use.
func LoadParameters(path string) (Parameters, error) {
	lines, err := readLines(path)
	if err != nil {
		return Parameters{}, err
	}
	if len(lines) < 3 {
		return Parameters{}, fmt.Errorf("%w: parameter file too short", ErrMalformedShape)
	}
	var p Parameters
	if p.G, err = decodeHex(lines[0]); err != nil {
		return Parameters{}, err
	}
	if p.H, err = decodeHex(lines[1]); err != nil {
		return Parameters{}, err
	}
	if p.N, err = decodeHex(lines[2]); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Save writes the proof file.
func (p *Proof) Save(path string) error {
	if err := p.CheckFields(); err != nil {
		return err
	}
	lines := make([]string, 0, FlattenedLen)
	for _, s := range p.scalars() {
		lines = append(lines, encodeHex(s))
	}
	lines = append(lines, strconv.Itoa(len(p.IPP.L)))
	for _, l := range p.IPP.L {
		lines = append(lines, encodeHex(l))
	}
	lines = append(lines, strconv.Itoa(len(p.IPP.R)))
	for _, r := range p.IPP.R {
		lines = append(lines, encodeHex(r))
	}
	lines = append(lines, encodeHex(p.IPP.A), encodeHex(p.IPP.B))
	return writeLines(path, lines)
}

// Load reads a proof file. Vector lengths must be positive and equal, and
// the four header commitments must be non-zero; deeper structural and
// cryptographic checks are the verifier's job.
func Load(path string) (*Proof, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	cur := 0
	next := func() (*big.Int, error) {
		if cur >= len(lines) {
			return nil, fmt.Errorf("%w: unexpected end of proof file", ErrMalformedShape)
		}
		v, err := decodeHex(lines[cur])
		cur++
		return v, err
	}

	scalars := make([]*big.Int, 15)
	for i := range scalars {
		if scalars[i], err = next(); err != nil {
			return nil, err
		}
	}

	readVec := func() ([]*big.Int, error) {
		if cur >= len(lines) {
			return nil, fmt.Errorf("%w: unexpected end of proof file", ErrMalformedShape)
		}
		n, err := strconv.Atoi(strings.TrimSpace(lines[cur]))
		cur++
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: invalid vector length", ErrMalformedShape)
		}
		vec := make([]*big.Int, n)
		for i := range vec {
			if vec[i], err = next(); err != nil {
				return nil, err
			}
		}
		return vec, nil
	}

	l, err := readVec()
	if err != nil {
		return nil, err
	}
	r, err := readVec()
	if err != nil {
		return nil, err
	}
	if len(l) != len(r) {
		return nil, fmt.Errorf("%w: ipp_L and ipp_R length mismatch", ErrMalformedShape)
	}

	a, err := next()
	if err != nil {
		return nil, err
	}
	b, err := next()
	if err != nil {
		return nil, err
	}

	for i, name := range []string{"A", "S", "T1", "T2"} {
		if scalars[i].Sign() == 0 {
			return nil, fmt.Errorf("%w: zero header scalar %s", ErrMalformedShape, name)
		}
	}

	return &Proof{
		A:    scalars[0],
		S:    scalars[1],
		T1:   scalars[2],
		T2:   scalars[3],
		TauX: scalars[4],
		Mu:   scalars[5],
		THat: scalars[6],
		C:    scalars[7],
		CV1:  scalars[8],
		CV2:  scalars[9],
		Poly: TPoly{T0: scalars[10], T1: scalars[11], T2: scalars[12]},
		Tau1: scalars[13],
		Tau2: scalars[14],
		IPP:  IPP{L: l, R: r, A: a, B: b},
	}, nil
}

func encodeHex(x *big.Int) string {
	b := x.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	return hex.EncodeToString(b)
}

func decodeHex(line string) (*big.Int, error) {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	if t == "" {
		return nil, fmt.Errorf("%w: empty hex line", ErrMalformedShape)
	}
	if len(t)%2 == 1 {
		t = "0" + t
	}
	b, err := hex.DecodeString(t)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex line", ErrMalformedShape)
	}
	return new(big.Int).SetBytes(b), nil
}

func writeLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}

func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n"), nil
}
