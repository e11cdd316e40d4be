// Package cmd implements the firelist CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (watch, tail, version).
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/firelist/cmd/firelist/internal/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(g *Globals, args []string) error
	SubCommands []*Command
}

// Globals are the flags accepted before or after any command.
type Globals struct {
	ConfigPath string
	Source     string
	Collection string
	Project    string
	Verbose    bool
}

// Resolve loads the configuration the flags point at.
func (g *Globals) Resolve() (*config.Resolved, error) {
	path := g.ConfigPath
	if path == "" {
		path = config.FileName
	}
	return config.Resolve(path, config.Overrides{
		SourceKind: g.Source,
		Collection: g.Collection,
		Project:    g.Project,
	})
}

var rootCmd = &Command{
	Name:  "firelist",
	Short: "firelist - live collections in your terminal",
	Long: `firelist binds an ordered, live collection (Cloud Firestore or an
in-memory demo feed) to a scrolling list and keeps it in sync row by row.

Use "firelist <command> --help" for more information about a command.`,
	Usage: "firelist <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	g := &Globals{}
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			g.Verbose = true
		case "--config", "--source", "--collection", "--project":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			setGlobal(g, arg, args[i+1])
			i++
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && isGlobal(name) {
				setGlobal(g, name, value)
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(g, cmdArgs)
}

func isGlobal(name string) bool {
	switch name {
	case "--config", "--source", "--collection", "--project":
		return true
	}
	return false
}

func setGlobal(g *Globals, name, value string) {
	switch name {
	case "--config":
		g.ConfigPath = value
	case "--source":
		g.Source = value
	case "--collection":
		g.Collection = value
	case "--project":
		g.Project = value
	}
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --config FILE        Config file (default: ./firelist.yaml)")
	fmt.Println("  --source KIND        memory or firestore (overrides source.kind)")
	fmt.Println("  --collection PATH    Collection to bind (overrides source.collection)")
	fmt.Println("  --project ID         Google Cloud project (overrides GOOGLE_CLOUD_PROJECT)")
	fmt.Println("  --verbose            Include stack traces in error reports")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GOOGLE_CLOUD_PROJECT     Project used by the firestore source")
	fmt.Println("  FIRESTORE_DATABASE       Database id (default: (default))")
	fmt.Println("  FIRESTORE_EMULATOR_HOST  Talk to a local emulator instead of production")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  firelist watch                               Watch the demo feed")
	fmt.Println("  firelist watch --source firestore --project p Watch a Firestore collection")
	fmt.Println("  firelist tail --for 10s                      Print row notifications for 10s")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

func printVersion() {
	fmt.Printf("firelist version %s (built %s)\n", Version, BuildTime)
}
