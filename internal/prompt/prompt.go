// Package prompt asks the user for an instruction when none was given on
// the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// DefaultPrompt is shown before the instruction is typed.
const DefaultPrompt = "Instruction: "

// Prompter reads one instruction line. Cancelling with Ctrl-C or EOF
// yields an empty instruction, which callers treat as a silent no-op.
type Prompter struct {
	In          io.Reader // os.Stdin when nil
	Out         io.Writer // os.Stderr when nil
	Prompt      string
	HistoryFile string   // readline history; empty disables it
	Triggers    []string // preset triggers offered for completion
}

// Instruction reads an instruction. A terminal gets line editing,
// history and trigger completion; anything else is read as a plain line.
func (p *Prompter) Instruction() (string, error) {
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	prompt := p.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return p.readline(f, out, prompt)
	}
	return readPlain(in, out, prompt)
}

func (p *Prompter) readline(in *os.File, out io.Writer, prompt string) (string, error) {
	if p.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(p.HistoryFile), 0755); err != nil {
			return "", fmt.Errorf("creating history directory: %w", err)
		}
	}
	var items []readline.PrefixCompleterInterface
	for _, t := range p.Triggers {
		items = append(items, readline.PcItem(t))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     p.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdin:           in,
		Stdout:          out,
		Stderr:          out,
	})
	if err != nil {
		return "", fmt.Errorf("starting line editor: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPlain(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
