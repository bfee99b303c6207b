package renderservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParse marks a document that could not be parsed
var ErrParse = errors.New("parse error")

type CellKind int

const (
	CellMarkdown CellKind = iota
	CellCode
)

func (k CellKind) String() string {
	if k == CellCode {
		return "code"
	}
	return "markdown"
}

// Cell is one notebook cell. Outputs holds the recorded output texts in order.
type Cell struct {
	Kind    CellKind
	Source  string
	Outputs []string
}

type Notebook struct {
	Cells []Cell
}

// multiline accepts the two nbformat encodings of text: a string or a list of
// strings that are concatenated verbatim.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*m = multiline(strings.Join(parts, ""))
	return nil
}

type rawOutput struct {
	OutputType string                     `json:"output_type"`
	Text       *multiline                 `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
	Ename      string                     `json:"ename"`
	Evalue     string                     `json:"evalue"`
}

type rawCell struct {
	CellType string      `json:"cell_type"`
	Source   multiline   `json:"source"`
	Outputs  []rawOutput `json:"outputs"`
}

type rawNotebook struct {
	Cells *[]rawCell `json:"cells"`
}

// ParseNotebook decodes notebook JSON. Cells whose type is neither markdown
// nor code are dropped.
func ParseNotebook(content string) (Notebook, error) {
	var raw rawNotebook
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Notebook{}, fmt.Errorf("%w: notebook: %v", ErrParse, err)
	}
	if raw.Cells == nil {
		return Notebook{}, fmt.Errorf("%w: notebook has no cells", ErrParse)
	}

	nb := Notebook{Cells: make([]Cell, 0, len(*raw.Cells))}
	for _, rc := range *raw.Cells {
		switch rc.CellType {
		case "markdown":
			nb.Cells = append(nb.Cells, Cell{Kind: CellMarkdown, Source: string(rc.Source)})
		case "code":
			cell := Cell{Kind: CellCode, Source: string(rc.Source)}
			for _, o := range rc.Outputs {
				if text, ok := o.text(); ok {
					cell.Outputs = append(cell.Outputs, text)
				}
			}
			nb.Cells = append(nb.Cells, cell)
		}
	}
	return nb, nil
}

func (o rawOutput) text() (string, bool) {
	if o.Text != nil {
		return string(*o.Text), true
	}
	if raw, ok := o.Data["text/plain"]; ok {
		var m multiline
		if err := json.Unmarshal(raw, &m); err == nil {
			return string(m), true
		}
	}
	if o.OutputType == "error" && o.Ename != "" {
		return o.Ename + ": " + o.Evalue, true
	}
	return "", false
}
