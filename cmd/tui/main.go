package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"contact-manager/internal/client"
	"contact-manager/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

// CLI is the terminal client for the contacts API.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	APIURL  string           `name:"api-url" env:"API_URL" help:"Base URL of the contacts API." default:"http://localhost:5000"`
	Timeout time.Duration    `env:"API_TIMEOUT" help:"Per-request timeout." default:"10s"`
}

// teaRunner is the part of *tea.Program run needs.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run starts the interactive UI.
func (c *CLI) Run() error {
	api, err := client.New(c.APIURL, c.Timeout)
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	prog := tea.NewProgram(tui.NewModel(api, c.Timeout), tea.WithAltScreen())
	return run(isTTY, prog)
}

// run executes the tea program, enabling testable wiring.
func run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("contacts: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Add, list and delete contacts from the terminal."),
		kong.Vars{"version": version + " " + commit},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
