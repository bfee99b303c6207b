package ui

import (
	execservice "github.com/redjax/nbview/internal/services/execService"
	importservice "github.com/redjax/nbview/internal/services/importService"
)

// storeChangedMsg is sent after one or more store mutations
type storeChangedMsg struct{}

type runDoneMsg struct {
	ticket  execservice.Ticket
	output  execservice.Output
	applied bool
}

type importResolvedMsg struct {
	source string
	items  []importservice.Item
	err    error
}

type savedMsg struct {
	explicit bool
	err      error
}
