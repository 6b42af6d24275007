// Command tablekit renders the tablekit demos, replays table recipes and
// sends email through Resend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/tablekit/config"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/mail"
	"github.com/kbukum/tablekit/observability"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/version"
)

const appName = "tablekit"

// Config is the tablekit config file.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Resend               mail.Config          `yaml:"resend" mapstructure:"resend"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Render               RenderConfig         `yaml:"render" mapstructure:"render"`
}

// RenderConfig holds the defaults of the render commands.
type RenderConfig struct {
	OutputDir    string `yaml:"output_dir" mapstructure:"output_dir"`
	DefaultStyle int    `yaml:"default_style" mapstructure:"default_style"`
	DefaultColor string `yaml:"default_color" mapstructure:"default_color"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Resend.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Resend.Validate(); err != nil {
		return fmt.Errorf("config.resend: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if s := c.Render.DefaultStyle; s < 0 || s > table.StylizeStyles {
		return fmt.Errorf("config.render.default_style must be between 1 and %d (got: %d)", table.StylizeStyles, s)
	}
	if c.Render.DefaultColor != "" && !table.IsStylizeColor(c.Render.DefaultColor) {
		return fmt.Errorf("config.render.default_color must be one of %v (got: %s)", table.StylizeColors(), c.Render.DefaultColor)
	}
	return nil
}

// app is the state shared by the subcommands.
type app struct {
	configFile string
	envFile    string
	debug      bool

	cfg      Config
	log      *logger.Logger
	shutdown func(context.Context) error
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	if err := config.LoadConfig(appName, &a.cfg, opts...); err != nil {
		return err
	}
	if a.debug {
		a.cfg.Debug = true
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	logger.Init(a.cfg.Logging)
	a.log = logger.WithComponent("cli")

	shutdown, err := observability.Setup(cmd.Context(), a.cfg.Telemetry, a.cfg.Name, version.Short())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	a.shutdown = shutdown
	a.log.Debug("config loaded", logger.Fields("command", cmd.Name(), "environment", a.cfg.Environment))
	return nil
}

func (a *app) close(cmd *cobra.Command, _ []string) error {
	if a.shutdown == nil {
		return nil
	}
	return a.shutdown(cmd.Context())
}

func (a *app) mailClient() (*mail.Client, error) {
	return mail.NewClient(a.cfg.Resend)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   appName,
		Short: "Build, step through and export styled tables",
		Long: "tablekit renders interactive table notebooks to HTML pages, replays\n" +
			"lazy table pipelines one operation at a time and sends the results by email.",
		SilenceUsage:       true,
		PersistentPreRunE:  a.load,
		PersistentPostRunE: a.close,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "config file (default: ./tablekit.yml or <user config dir>/tablekit/config.yml)")
	f.StringVar(&a.envFile, "env-file", "", "env file (default: .env.tablekit or .env)")
	f.BoolVar(&a.debug, "debug", false, "log at debug level")

	root.AddCommand(
		newRenderCmd(a),
		newTablesCmd(a),
		newRecipeCmd(a),
		newMailCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	root.Version = version.Short()
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
