package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind       string
	characters string
	dataFile   string
	port       int
	prefix     string
	profile    bool
	public     string
	resetDelay time.Duration
	tlsCert    string
	tlsKey     string
	verbose    bool
	version    bool
	wordlists  string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}

	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}

	if c.resetDelay <= 0 {
		return fmt.Errorf("invalid reset delay (must be positive): %s", c.resetDelay)
	}

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}

	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUEIDOLSOUEU")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "queidolsoueu",
		Short:         "A two-player deduction game with a word-guessing minigame and an avatar shop.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}

			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUEIDOLSOUEU_BIND)")
	fs.StringVar(&cfg.characters, "characters", "personagens", "directory of character images (env: QUEIDOLSOUEU_CHARACTERS)")
	fs.StringVar(&cfg.dataFile, "data-file", "database.json", "path to the user database file (env: QUEIDOLSOUEU_DATA_FILE)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to listen on (env: QUEIDOLSOUEU_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: QUEIDOLSOUEU_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: QUEIDOLSOUEU_PROFILE)")
	fs.StringVar(&cfg.public, "public", "public", "directory of static web client files (env: QUEIDOLSOUEU_PUBLIC)")
	fs.DurationVar(&cfg.resetDelay, "reset-delay", 25*time.Second, "time before a finished room returns to waiting (env: QUEIDOLSOUEU_RESET_DELAY)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: QUEIDOLSOUEU_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: QUEIDOLSOUEU_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: QUEIDOLSOUEU_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: QUEIDOLSOUEU_VERSION)")
	fs.StringVar(&cfg.wordlists, "wordlists", "wordlists", "directory of themed word lists (env: QUEIDOLSOUEU_WORDLISTS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("queidolsoueu v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
