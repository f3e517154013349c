package debugger

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/riva128/hardware"
	"github.com/jetsetilly/riva128/hardware/pci"
	"github.com/jetsetilly/riva128/logger"
	"github.com/jetsetilly/riva128/resources"
	"github.com/jetsetilly/riva128/version"
	"golang.org/x/term"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	ctx context

	sig   chan os.Signal
	input chan input

	adapter *hardware.Adapter
	watches map[string]watch

	// the state saved by the SNAPSHOT command. nil if no snapshot has been
	// taken
	snapshot *hardware.State

	// the nesting depth of SCRIPT commands
	scriptDepth int

	// all output from the debugger is written here
	out io.Writer

	// printing styles
	styles styles

	// whether to print a prompt before reading input
	prompt bool

	// name of the resource that commands entered at the prompt are added
	// to. commands are not recorded if the field is empty
	history string
}

func newDebugger(ctx context, out io.Writer) (*debugger, error) {
	cfg, err := pci.Parse(ctx.variant, ctx.props)
	if err != nil {
		return nil, err
	}

	m := &debugger{
		ctx:     ctx,
		sig:     make(chan os.Signal, 1),
		input:   make(chan input, 1),
		watches: make(map[string]watch),
		out:     out,
		styles:  newStyles(),
	}

	m.adapter, err = hardware.Create(&m.ctx, cfg)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *debugger) println(style lipgloss.Style, s string) {
	fmt.Fprintln(m.out, style.Render(s))
}

func (m *debugger) printErr(err error) {
	m.println(m.styles.err, err.Error())
}

func (m *debugger) reset() {
	m.adapter.Reset()
	m.println(m.styles.debugger, "adapter reset")
	m.println(m.styles.i2c, m.adapter.RIVA.Status())
}

// reportWatches prints any change to a watched line
func (m *debugger) reportWatches() {
	for _, s := range m.checkWatches() {
		m.println(m.styles.watch, fmt.Sprintf("watch: %s", s))
	}
}

// command runs a single command and reports on the watches afterwards.
// returns true if the debugger is to quit
func (m *debugger) command(cmd []string) bool {
	quit := m.commands(cmd)
	m.reportWatches()
	return quit
}

func (m *debugger) loop() {
	for {
		if m.prompt {
			fmt.Fprintf(m.out, "%s> ", m.adapter.RIVA.I2C)
		}

		var cmd []string

		select {
		case input := <-m.input:
			if input.err != nil {
				if !errors.Is(input.err, io.EOF) {
					m.printErr(input.err)
				}
				return
			}
			cmd = strings.Fields(input.s)
			if m.history != "" && len(cmd) > 0 {
				if err := resources.AppendLine(m.history, input.s); err != nil {
					logger.Log(&m.ctx, "debugger", err)
				}
			}
		case <-m.sig:
			fmt.Fprint(m.out, "\r")
			return
		}

		if m.command(cmd) {
			return
		}
	}
}

const programName = "riva128"

// the resource name for the command history
const historyFile = "history"

// Launch the debugger with the command line arguments. Returns when the QUIT
// command is issued, stdin is closed or on an interrupt signal.
func Launch(args []string) error {
	var variant string
	var props string
	var echo bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.StringVar(&variant, "variant", "primary", "adapter variant: primary or secondary")
	flgs.StringVar(&props, "props", "", "comma separated list of adapter properties. eg. riva128mem_mb=8,mmio=on")
	flgs.BoolVar(&echo, "echo", false, "echo log entries to the terminal as they are created")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}
	args = flgs.Args()

	var scriptfile string
	if len(args) == 1 {
		scriptfile = args[0]
	} else if len(args) > 1 {
		return fmt.Errorf("too many arguments to debugger")
	}

	ctx := context{
		props: props,
	}
	ctx.variant, err = pci.ParseVariant(variant)
	if err != nil {
		return err
	}

	if echo {
		logger.SetEcho(os.Stdout)
	}

	m, err := newDebugger(ctx, os.Stdout)
	if err != nil {
		return err
	}
	m.prompt = term.IsTerminal(int(os.Stdin.Fd()))
	m.history = historyFile

	m.println(m.styles.debugger, version.Banner())
	m.println(m.styles.debugger, m.adapter.Config.String())

	signal.Notify(m.sig, syscall.SIGINT)

	go func() {
		r := bufio.NewReader(os.Stdin)
		for {
			s, err := r.ReadString('\n')
			if len(s) > 0 {
				m.input <- input{s: strings.TrimSpace(s)}
			}
			if err != nil {
				m.input <- input{err: err}
				return
			}
		}
	}()

	if scriptfile != "" {
		if m.runScript(scriptfile) {
			return nil
		}
	}

	m.loop()
	return nil
}
