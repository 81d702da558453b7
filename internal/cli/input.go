// Package cli is the interactive terminal front-end to the voter search.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/votersearch/pkg/search"
	"github.com/bastiangx/votersearch/pkg/service"
	"github.com/charmbracelet/log"
)

const prompt = "> "

// InputHandler reads queries line by line and prints matching voters.
// Lines starting with ':' are commands:
//
//	:mode id|name|all   switch the search mode
//	:complete PREFIX    list name completions
//	:info               show what is loaded
//	:quit               leave
type InputHandler struct {
	svc          *service.Service
	mode         search.Mode
	suggestLimit int
	theme        Theme

	in  io.Reader
	out io.Writer

	requestCount int
}

// NewInputHandler creates a handler reading in and writing to out.
func NewInputHandler(svc *service.Service, in io.Reader, out io.Writer, mode search.Mode, limit int, color bool) *InputHandler {
	return &InputHandler{
		svc:          svc,
		mode:         mode,
		suggestLimit: limit,
		theme:        NewTheme(out, color),
		in:           in,
		out:          out,
	}
}

// Start runs the prompt loop until EOF or :quit.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "VoterSearch CLI")
	fmt.Fprintln(h.out, "type a name or voter ID and press Enter (:quit or Ctrl+D to exit):")
	reader := bufio.NewReader(h.in)

	for {
		fmt.Fprint(h.out, prompt)
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if quit := h.handleInput(line); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(h.out)
				return nil
			}
			return err
		}
	}
}

// handleInput processes one line and reports whether the loop should end.
func (h *InputHandler) handleInput(line string) bool {
	h.requestCount++
	if strings.HasPrefix(line, ":") {
		return h.handleCommand(line[1:])
	}
	h.runSearch(line)
	return false
}

func (h *InputHandler) handleCommand(cmd string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return true
	case "mode":
		h.mode = search.ParseMode(arg)
		fmt.Fprintf(h.out, "mode: %s\n", h.mode)
	case "complete", "c":
		suggestions, err := h.svc.Complete(arg, h.suggestLimit)
		if err != nil {
			fmt.Fprintln(h.out, h.theme.Error.Render(service.Message(err)))
			return false
		}
		if len(suggestions) == 0 {
			fmt.Fprintf(h.out, "No names start with %q\n", arg)
			return false
		}
		fmt.Fprintln(h.out, h.theme.RenderSuggestions(suggestions))
	case "info":
		info := h.svc.Info()
		fmt.Fprintf(h.out, "status: %s, records: %d, source: %s\n", info.Status, info.Records, info.Source)
	default:
		fmt.Fprintln(h.out, h.theme.Error.Render(fmt.Sprintf("Unknown command: :%s", name)))
	}
	return false
}

func (h *InputHandler) runSearch(query string) {
	start := time.Now()
	voters, err := h.svc.Search(query, h.mode)
	log.Debugf("Took [ %v ] for query '%s' in mode %s", time.Since(start), query, h.mode)
	if err != nil {
		fmt.Fprintln(h.out, h.theme.Error.Render(service.Message(err)))
		return
	}
	fmt.Fprintln(h.out, h.theme.RenderResults(service.Summary(query, len(voters)), voters))
}
