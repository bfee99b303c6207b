package commands

import (
	"fmt"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	"github.com/redjax/nbview/internal/utils/prompt"
)

// OnConflictUsage documents the --on-conflict flag
const OnConflictUsage = "what to do when a name is taken: prompt, overwrite, rename or skip"

// ConflictResolver turns an --on-conflict value into a resolver. "prompt"
// asks through p.
func ConflictResolver(p *prompt.Prompter, store *filestoreservice.Store, mode string) (filestoreservice.Resolver, error) {
	if mode == "" || mode == "prompt" {
		return p.Resolver(store), nil
	}
	action, err := filestoreservice.ParseAction(mode)
	if err != nil {
		return nil, fmt.Errorf("--on-conflict: %w", err)
	}
	return filestoreservice.FixedResolver(action, store), nil
}
