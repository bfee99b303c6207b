// Package prompt asks yes/no and conflict questions on a terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	answer, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question. An empty answer picks def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", question, hint)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	if answer == "" {
		return def, nil
	}
	return answer == "y" || answer == "yes", nil
}

// Ask reads a free-form answer. An empty answer picks def.
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Resolver asks how to handle each name conflict. Renames default to a free
// "name (n).ext" suggestion.
func (p *Prompter) Resolver(store *filestoreservice.Store) filestoreservice.Resolver {
	return filestoreservice.ResolverFunc(func(ctx context.Context, name string) (filestoreservice.Resolution, error) {
		for {
			if err := ctx.Err(); err != nil {
				return filestoreservice.Resolution{}, err
			}
			fmt.Fprintf(p.out, "%q already exists. [o]verwrite, [r]ename existing, [s]kip? ", name)
			answer, err := p.readLine()
			if err != nil {
				return filestoreservice.Resolution{}, err
			}

			switch strings.ToLower(answer) {
			case "o", "overwrite":
				return filestoreservice.Overwrite(), nil
			case "s", "skip", "":
				return filestoreservice.Skip(), nil
			case "r", "rename":
				newName, err := p.Ask(fmt.Sprintf("New name for the existing %q", name), filestoreservice.SuggestName(store, name))
				if err != nil {
					return filestoreservice.Resolution{}, err
				}
				return filestoreservice.RenameTo(newName), nil
			default:
				fmt.Fprintf(p.out, "Unrecognized answer %q\n", answer)
			}
		}
	})
}
