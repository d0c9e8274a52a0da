// Package logparse parses temperature test logs into ordered reading blocks.
//
// A log is a flat text file containing one or more test blocks. Each block
// starts with a delimiter line of the form #####<digits>##### and contains
// channel reading lines of the form "chnl N, valid N, temp F". Only readings
// with valid == 1 are kept. Every other line is ignored.
package logparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// UnknownTitle is the title assigned to a block whose delimiter carried no
// digit token (only possible for readings seen before the first delimiter).
const UnknownTitle = "unknown"

var (
	separatorRe = regexp.MustCompile(`^#####(\d+)#####$`)
	readingRe   = regexp.MustCompile(`^chnl\s+(\d+),\s*valid\s+(\d+),\s*temp\s+([-+]?[0-9]+(?:\.[0-9]+)?)`)
)

// Block is one test block: the digit token from its delimiter line and the
// validated readings it accumulated, keyed by channel. A repeated channel
// line within a block overwrites the earlier reading.
type Block struct {
	Title string
	Temps map[int]float64
}

// Diagnostics reports what the parser saw while scanning a log.
type Diagnostics struct {
	Lines           int // total lines scanned
	Readings        int // reading lines with valid == 1
	InvalidReadings int // reading lines skipped because valid != 1
	Ignored         int // lines that matched neither pattern
}

// Parse scans log text line by line and returns the non-empty blocks in log
// order. Unrecognized lines are skipped, never rejected; the only possible
// error comes from the reader itself.
func Parse(r io.Reader) ([]Block, Diagnostics, error) {
	var (
		blocks []Block
		diag   Diagnostics

		// Two-state machine: either no block is open, or one block is
		// accumulating readings under a pending title.
		open    bool
		current map[int]float64
		title   string
	)

	emit := func() {
		if !open || len(current) == 0 {
			return
		}
		t := title
		if t == "" {
			t = UnknownTitle
		}
		blocks = append(blocks, Block{Title: t, Temps: current})
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		diag.Lines++
		line := strings.TrimSpace(sc.Text())

		if m := separatorRe.FindStringSubmatch(line); m != nil {
			emit()
			open = true
			current = make(map[int]float64)
			title = m[1]
			continue
		}

		m := readingRe.FindStringSubmatch(line)
		if m == nil {
			diag.Ignored++
			continue
		}
		chnl, err := strconv.Atoi(m[1])
		if err != nil {
			diag.Ignored++
			continue
		}
		valid, err := strconv.Atoi(m[2])
		if err != nil {
			diag.Ignored++
			continue
		}
		temp, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			diag.Ignored++
			continue
		}

		if valid != 1 {
			diag.InvalidReadings++
			continue
		}

		// Readings before the first delimiter open an untitled block.
		if !open {
			open = true
			current = make(map[int]float64)
		}
		current[chnl] = temp
		diag.Readings++
	}
	if err := sc.Err(); err != nil {
		return nil, diag, fmt.Errorf("failed to scan log: %w", err)
	}

	emit()
	return blocks, diag, nil
}

// ParseFile opens and parses a log file. A missing file is reported as the
// wrapped os error, so callers can test it with errors.Is(err, fs.ErrNotExist).
func ParseFile(path string) ([]Block, Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}
