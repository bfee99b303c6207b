package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"y", false, true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := New(strings.NewReader(tt.input), &out).Confirm("Import a.py?", tt.def)
		if err != nil || got != tt.want {
			t.Errorf("Confirm(%q, %v) = %v, %v", tt.input, tt.def, got, err)
		}
	}

	if _, err := New(strings.NewReader(""), io.Discard).Confirm("?", true); err != io.EOF {
		t.Errorf("closed input: %v", err)
	}
}

func TestResolver(t *testing.T) {
	store := filestoreservice.New()
	_ = store.Add("a.py", "old")

	tests := []struct {
		input string
		want  filestoreservice.Resolution
	}{
		{"o\n", filestoreservice.Overwrite()},
		{"skip\n", filestoreservice.Skip()},
		{"what\ns\n", filestoreservice.Skip()},
		{"r\n\n", filestoreservice.RenameTo("a (1).py")},
		{"r\nold.py\n", filestoreservice.RenameTo("old.py")},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := New(strings.NewReader(tt.input), &out).Resolver(store).Resolve(context.Background(), "a.py")
		if err != nil || got != tt.want {
			t.Errorf("input %q: %+v, %v (output %q)", tt.input, got, err, out.String())
		}
	}
}
