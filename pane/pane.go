// Package pane captures terminal scrollback from tmux panes for use as
// query context. Capture is a pass-through to the tmux CLI; when no tmux
// session is available the caller gets an empty result, not an error.
package pane

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Pane selector values understood by History.
const (
	TargetCurrent = "current"
	TargetAll     = "all"
)

// Pane is one tmux viewport whose scrollback has been captured.
// Ephemeral: produced per invocation and consumed immediately.
type Pane struct {
	ID     string
	Active bool
	Text   string
}

// InSession reports whether the process is running inside a tmux session.
func InSession() bool {
	return os.Getenv("TMUX") != ""
}

// History captures scrollback from tmux. The target selects the current
// pane, all panes, or a specific pane ID. Outside a tmux session it returns
// an empty string and no error; a failing tmux invocation is returned for
// the caller to log and recover from.
func History(lines int, target string) (string, error) {
	if !InSession() {
		return "", nil
	}

	switch target {
	case TargetCurrent, "":
		return capturePane(lines, "")
	case TargetAll:
		panes, err := captureAll(lines)
		if err != nil {
			return "", err
		}
		return formatPanes(panes), nil
	default:
		return capturePane(lines, target)
	}
}

// captureArgs builds the tmux capture-pane argument list.
func captureArgs(lines int, paneID string) []string {
	args := []string{"capture-pane", "-p", "-S", "-" + strconv.Itoa(lines)}
	if paneID != "" {
		args = append(args, "-t", paneID)
	}
	return args
}

func capturePane(lines int, paneID string) (string, error) {
	out, err := exec.Command("tmux", captureArgs(lines, paneID)...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux capture-pane: %w", err)
	}
	return string(out), nil
}

func captureAll(lines int) ([]Pane, error) {
	current, err := exec.Command("tmux", "display-message", "-p", "#{pane_id}").Output()
	if err != nil {
		return nil, fmt.Errorf("tmux display-message: %w", err)
	}
	currentID := strings.TrimSpace(string(current))

	list, err := exec.Command("tmux", "list-panes", "-F", "#{pane_id}").Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	var panes []Pane
	for _, id := range strings.Fields(string(list)) {
		text, err := capturePane(lines, id)
		if err != nil {
			return nil, err
		}
		panes = append(panes, Pane{
			ID:     id,
			Active: id == currentID,
			Text:   text,
		})
	}
	return panes, nil
}

// formatPanes wraps each captured pane in a tagged block, marking the
// active pane.
func formatPanes(panes []Pane) string {
	outputs := make([]string, len(panes))
	for i, p := range panes {
		active := ""
		if p.Active {
			active = "active"
		}
		outputs[i] = fmt.Sprintf("<pane id=%s %s>%s</pane>", p.ID, active, p.Text)
	}
	return strings.Join(outputs, "\n")
}
