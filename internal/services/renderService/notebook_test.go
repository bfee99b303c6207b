package renderservice

import (
	"errors"
	"reflect"
	"testing"
)

const sampleNotebook = `{
 "cells": [
  {"cell_type": "markdown", "source": ["# Title\n", "intro"]},
  {"cell_type": "code", "source": "x = 1\nx", "outputs": [
    {"output_type": "stream", "text": ["a\n", "b\n"]},
    {"output_type": "execute_result", "data": {"text/plain": ["1"], "image/png": "iVBOR"}},
    {"output_type": "error", "ename": "ValueError", "evalue": "bad"},
    {"output_type": "display_data", "data": {"image/png": "iVBOR"}}
  ]},
  {"cell_type": "raw", "source": "ignored"},
  {"cell_type": "code", "source": [], "outputs": []}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestParseNotebook(t *testing.T) {
	nb, err := ParseNotebook(sampleNotebook)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []Cell{
		{Kind: CellMarkdown, Source: "# Title\nintro"},
		{Kind: CellCode, Source: "x = 1\nx", Outputs: []string{"a\nb\n", "1", "ValueError: bad"}},
		{Kind: CellCode, Source: ""},
	}
	if !reflect.DeepEqual(nb.Cells, want) {
		t.Errorf("cells = %#v\nwant %#v", nb.Cells, want)
	}
}

func TestParseNotebookMalformed(t *testing.T) {
	for _, in := range []string{
		`{not valid json`,
		`{"metadata": {}}`,
		`{"cells": [{"cell_type": "code", "source": 12}]}`,
		``,
	} {
		if _, err := ParseNotebook(in); !errors.Is(err, ErrParse) {
			t.Errorf("ParseNotebook(%q): expected ErrParse, got %v", in, err)
		}
	}
}
