package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvalign/internal/batch"
	"github.com/katalvlaran/lvalign/viterbi"
)

var (
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mismatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	gapStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Faint(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// column markers under each aligned pair
const (
	markMatch    = "|"
	markMismatch = "*"
	markGap      = " "
)

type renderer struct {
	w     io.Writer
	color bool
}

func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// pathDoc is the YAML shape of one path.
type pathDoc struct {
	Score       float64     `yaml:"score"`
	Coordinates [][2]int    `yaml:"coordinates,flow"`
	Alignment   [][2]string `yaml:"alignment,flow"`
}

// alignmentDoc is the YAML shape of an align result.
type alignmentDoc struct {
	Name     string    `yaml:"name,omitempty"`
	A        string    `yaml:"a"`
	B        string    `yaml:"b"`
	Complete int       `yaml:"complete_paths"`
	Best     int       `yaml:"best_paths"`
	Paths    []pathDoc `yaml:"paths"`
	Error    string    `yaml:"error,omitempty"`
}

func newPathDoc(p viterbi.Path) pathDoc {
	doc := pathDoc{Score: p.Score()}
	for _, c := range p.Coordinates() {
		doc.Coordinates = append(doc.Coordinates, [2]int{c.Row, c.Col})
	}
	for _, pr := range p.Alignment() {
		doc.Alignment = append(doc.Alignment, [2]string{pr.A.String(), pr.B.String()})
	}
	return doc
}

func newAlignmentDoc(al *viterbi.Aligner, paths []viterbi.Path) alignmentDoc {
	doc := alignmentDoc{
		A:        viterbi.Join(al.A(), al.Separator()),
		B:        viterbi.Join(al.B(), al.Separator()),
		Complete: al.Terminal().NumPaths(),
		Best:     len(al.BestPaths()),
	}
	for _, p := range paths {
		doc.Paths = append(doc.Paths, newPathDoc(p))
	}
	return doc
}

func (r renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// paths prints each path as a three-row table: A tokens, markers, B tokens.
func (r renderer) paths(al *viterbi.Aligner, paths []viterbi.Path) {
	fmt.Fprintf(r.w, "%s  complete=%d best=%d\n",
		r.style(titleStyle, viterbi.Join(al.A(), al.Separator())+" ~ "+viterbi.Join(al.B(), al.Separator())),
		al.Terminal().NumPaths(), len(al.BestPaths()))
	if len(paths) == 0 {
		fmt.Fprintln(r.w, "no complete alignment")
		return
	}
	for i, p := range paths {
		fmt.Fprintf(r.w, "\npath %d/%d  score=%s\n", i+1, len(paths), formatScore(p.Score()))
		r.pathTable(p)
	}
}

func (r renderer) pathTable(p viterbi.Path) {
	pairs := p.Alignment()
	rowA := []string{"A"}
	rowM := []string{""}
	rowB := []string{"B"}
	for _, pr := range pairs {
		a, b := pr.A.String(), pr.B.String()
		switch {
		case pr.A.IsNull() || pr.B.IsNull():
			a, b = r.style(gapStyle, a), r.style(gapStyle, b)
			rowM = append(rowM, markGap)
		case pr.A == pr.B:
			a, b = r.style(matchStyle, a), r.style(matchStyle, b)
			rowM = append(rowM, markMatch)
		default:
			a, b = r.style(mismatchStyle, a), r.style(mismatchStyle, b)
			rowM = append(rowM, markMismatch)
		}
		rowA = append(rowA, a)
		rowB = append(rowB, b)
	}

	table := tablewriter.NewWriter(r.w)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.AppendBulk([][]string{rowA, rowM, rowB})
	table.Render()
}

// batchTable prints one summary row per job.
func (r renderer) batchTable(results []batch.Result) {
	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"Job", "Complete", "Best", "Score", "Alignment"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	failed := 0
	for _, res := range results {
		row := []string{res.Job.Name, strconv.Itoa(res.Complete()), strconv.Itoa(len(res.Best)), "", ""}
		switch {
		case res.Err != nil:
			failed++
			row[4] = "error: " + res.Err.Error()
		case len(res.Best) > 0:
			row[3] = formatScore(res.Best[0].Score())
			row[4] = compactAlignment(res.Best[0])
		default:
			row[4] = "no complete alignment"
		}
		table.Append(row)
	}
	table.SetFooter([]string{fmt.Sprintf("%d jobs", len(results)), "", "", "", fmt.Sprintf("%d failed", failed)})
	table.Render()
}

func batchDocs(results []batch.Result) []alignmentDoc {
	docs := make([]alignmentDoc, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			docs = append(docs, alignmentDoc{Name: res.Job.Name, A: res.Job.A, B: res.Job.B, Error: res.Err.Error()})
			continue
		}
		doc := newAlignmentDoc(res.Aligner, res.Best)
		doc.Name = res.Job.Name
		docs = append(docs, doc)
	}
	return docs
}

// compactAlignment renders pairs as "a/b" tokens separated by spaces.
func compactAlignment(p viterbi.Path) string {
	out := ""
	for i, pr := range p.Alignment() {
		if i > 0 {
			out += " "
		}
		out += pr.A.String() + "/" + pr.B.String()
	}
	return out
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'g', 6, 64)
}
