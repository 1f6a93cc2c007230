package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"ekkles/internal/database"
	"ekkles/internal/logging"
	"ekkles/internal/startup"
)

// CLI defines the command-line interface for ekklesctl.
type CLI struct {
	Globals

	Playlist PlaylistGroup `cmd:"" help:"Playlist operations"`
	Song     SongGroup     `cmd:"" help:"Song library operations"`
	Bible    BibleGroup    `cmd:"" help:"Bible translation operations"`
	Resolve  ResolveCmd    `cmd:"" help:"Print the slides a playlist resolves to"`
	Version  VersionCmd    `cmd:"" help:"Print version information"`
}

// Globals are flags shared by every command.
type Globals struct {
	DataDir string `name:"data-dir" short:"d" env:"DATABASE_DIR" default:"./data" type:"path" help:"Directory holding the ekkles database"`
	Yes     bool   `short:"y" help:"Answer yes to confirmation prompts"`
	Verbose bool   `short:"v" help:"Log database activity"`

	Context context.Context `kong:"-"`
	In      io.Reader       `kong:"-"`
	Out     io.Writer       `kong:"-"`
}

func (g *Globals) openDB() (*database.Database, error) {
	if err := os.MkdirAll(g.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return database.New(g.Context, filepath.Join(g.DataDir, startup.DatabaseFile))
}

func (g *Globals) printf(format string, args ...interface{}) {
	fmt.Fprintf(g.Out, format, args...)
}

// confirm asks a yes/no question on the input. Without a terminal to ask on
// it refuses unless --yes was given.
func (g *Globals) confirm(prompt string) (bool, error) {
	if g.Yes {
		return true, nil
	}
	if f, ok := g.In.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errors.New("input is not a terminal, pass --yes to confirm")
	}

	g.printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(g.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// VersionCmd prints build information.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	info := startup.GetBuildInfo()
	g.printf("ekklesctl %s (commit %s, built %s, %s %s/%s)\n",
		info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := CLI{}
	kctx := kong.Parse(&cli,
		kong.Name("ekklesctl"),
		kong.Description("Maintain the ekkles song, Bible and playlist library"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if !cli.Verbose {
		logging.SetLevel(logging.LevelWarn)
	}
	cli.Context = ctx
	cli.In = os.Stdin
	cli.Out = os.Stdout

	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
