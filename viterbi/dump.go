package viterbi

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DumpMode selects what Dump prints for each cell.
type DumpMode int

const (
	// DumpCoordinates prints "(row,col)".
	DumpCoordinates DumpMode = iota
	// DumpPathCounts prints the number of paths ending in the cell.
	DumpPathCounts
	// DumpRemaining prints the unconsumed suffixes of A and B.
	DumpRemaining
)

// String returns the mode name accepted by ParseDumpMode.
func (m DumpMode) String() string {
	switch m {
	case DumpCoordinates:
		return "coordinates"
	case DumpPathCounts:
		return "npaths"
	case DumpRemaining:
		return "remaining"
	}
	return fmt.Sprintf("DumpMode(%d)", int(m))
}

// ParseDumpMode maps a mode name to a DumpMode.
func ParseDumpMode(name string) (DumpMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "coordinates", "coords", "":
		return DumpCoordinates, nil
	case "npaths", "counts":
		return DumpPathCounts, nil
	case "remaining", "names":
		return DumpRemaining, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDumpMode, name)
}

// Dump writes a diagnostic table of the grid to w, last row first so that
// the origin sits bottom-left. The layout carries no stability guarantee.
func (al *Aligner) Dump(w io.Writer, mode DumpMode) error {
	if al.cells == nil {
		return ErrGridNotInitialized
	}

	header := make([]string, 0, al.cols+1)
	header = append(header, "row\\col")
	for j := 0; j < al.cols; j++ {
		header = append(header, strconv.Itoa(j))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	for i := al.rows - 1; i >= 0; i-- {
		row := make([]string, 0, al.cols+1)
		row = append(row, strconv.Itoa(i))
		for j := 0; j < al.cols; j++ {
			c := Cell{al: al, idx: al.index(i, j)}
			row = append(row, al.cellLabel(c, mode))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func (al *Aligner) cellLabel(c Cell, mode DumpMode) string {
	switch mode {
	case DumpPathCounts:
		return strconv.Itoa(c.NumPaths())
	case DumpRemaining:
		a, b := c.Remaining()
		return fmt.Sprintf("(%s,%s)", strconv.Quote(Join(a, al.sep)), strconv.Quote(Join(b, al.sep)))
	}
	return c.Coordinates().String()
}
