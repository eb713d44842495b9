// Package main provides the entry point for the StudyPace CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/studypace/audio"
	"github.com/dgnsrekt/studypace/document"
	"github.com/dgnsrekt/studypace/schedule"
	"github.com/dgnsrekt/studypace/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile      string
	durationMinutes int
	introSeconds    int
	conclSeconds    int
	graceSeconds    int
	theme           string
	width           uint
	mouse           bool
	silent          bool
	bell            bool
	jumpTo          int

	rootCmd = &cobra.Command{
		Use:   "studypace [ANALYSIS]",
		Short: "Pace a study presentation against the clock",
		Long: paragraph(fmt.Sprintf(
			"\nDrive a timed presentation from an analyzed document. StudyPace %s the remaining time across every question still to be asked, so running long on one paragraph quietly shortens the rest.",
			keyword("redistributes"))),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// source provides a readable analysis source.
type source struct {
	reader io.ReadCloser
	// Path is set for local files only; it enables live reload.
	Path string
}

// sourceFromArg parses an argument and creates a readable source for it.
func sourceFromArg(arg string) (*source, error) {
	// from stdin
	if arg == "-" {
		return &source{reader: os.Stdin}, nil
	}

	// HTTP(S) URLs:
	if u, err := url.ParseRequestURI(arg); err == nil && strings.Contains(arg, "://") {
		if u.Scheme != "" {
			if u.Scheme != "http" && u.Scheme != "https" {
				return nil, fmt.Errorf("%s is not a supported protocol", u.Scheme)
			}
			// consumer of the source is responsible for closing the ReadCloser.
			resp, err := http.Get(u.String()) //nolint: noctx,bodyclose
			if err != nil {
				return nil, fmt.Errorf("unable to get url: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("HTTP status %d", resp.StatusCode)
			}
			return &source{reader: resp.Body}, nil
		}
	}

	r, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	p, err := filepath.Abs(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}
	return &source{reader: r, Path: p}, nil
}

func validateOptions(cmd *cobra.Command) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	// grab config values from Viper
	width = viper.GetUint("width")
	mouse = viper.GetBool("mouse")
	theme = viper.GetString("theme")

	if _, err := ui.ParseTheme(theme); err != nil {
		return err
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	// A dumb pipe target gets the no-color theme unless one was forced.
	if !isTerminal && !cmd.Flags().Changed("theme") {
		theme = "none"
	}

	// Detect terminal width
	if !cmd.Flags().Changed("width") { //nolint:nestif
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}
			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	// if stdin is a pipe then use stdin for input. note that you can also
	// explicitly use a - to read from stdin.
	if len(args) == 0 {
		if yes, err := stdinIsPipe(); err != nil {
			return err
		} else if yes {
			src := &source{reader: os.Stdin}
			return runSession(cmd, src)
		}
		return errors.New("missing analysis source")
	}

	src, err := sourceFromArg(args[0])
	if err != nil {
		return err
	}
	return runSession(cmd, src)
}

func runSession(cmd *cobra.Command, src *source) error {
	defer src.reader.Close() //nolint:errcheck

	doc, err := document.Decode(src.reader)
	if err != nil {
		return fmt.Errorf("unable to read analysis: %w", err)
	}
	if doc.IsEmpty() {
		return errors.New("analysis has no paragraphs or questions")
	}

	engineCfg := schedule.LoadConfigFromViper()
	if cmd.Flags().Changed("duration") {
		engineCfg.TotalDurationMinutes = durationMinutes
	}
	if cmd.Flags().Changed("intro") {
		engineCfg.IntroductionSeconds = introSeconds
	}
	if cmd.Flags().Changed("conclusion") {
		engineCfg.ConclusionSeconds = conclSeconds
	}
	if cmd.Flags().Changed("grace") {
		engineCfg.OvertimeGraceSeconds = graceSeconds
	}
	if silent {
		engineCfg.Sound = false
	}
	engineCfg = engineCfg.Clamp()
	if err := engineCfg.Validate(); err != nil {
		return err
	}

	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}
	// Theme resolves through viper (flag, config file, STUDYPACE_THEME).
	cfg.Theme = theme
	cfg.Path = src.Path
	cfg.Width = width
	cfg.EnableMouse = mouse
	cfg.JumpToParagraph = jumpTo

	notifier := buildNotifier(engineCfg)

	p, err := ui.NewProgram(cfg, engineCfg, doc, notifier)
	if err != nil {
		return err
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// Minimum spacing between audible warning/urgent alerts.
const alertInterval = 10 * time.Second

// buildNotifier picks the alert backend: synthesized tones by default, the
// terminal bell as a fallback, nothing when sound is off. Non-final alerts
// are throttled so a noisy segment cannot chime every second.
func buildNotifier(cfg schedule.Config) schedule.Notifier {
	if !cfg.Sound {
		return schedule.NopNotifier{}
	}
	if bell {
		return audio.NewThrottled(audio.NewBell(os.Stderr), alertInterval)
	}
	beeper, err := audio.NewBeeper(cfg.Volume)
	if err != nil {
		log.Warn("Audio unavailable, falling back to terminal bell", "err", err)
		return audio.NewThrottled(audio.NewBell(os.Stderr), alertInterval)
	}
	return audio.NewThrottled(beeper, alertInterval)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	defaults := schedule.DefaultConfig()
	rootCmd.Flags().IntVarP(&durationMinutes, "duration", "d", defaults.TotalDurationMinutes, "total session duration in minutes")
	rootCmd.Flags().IntVar(&introSeconds, "intro", defaults.IntroductionSeconds, "nominal introduction length in seconds")
	rootCmd.Flags().IntVar(&conclSeconds, "conclusion", defaults.ConclusionSeconds, "nominal conclusion length in seconds")
	rootCmd.Flags().IntVar(&graceSeconds, "grace", defaults.OvertimeGraceSeconds, "grace period before the urgent overtime alert, in seconds")
	rootCmd.Flags().StringVarP(&theme, "theme", "s", "auto", "color theme: auto, dark, light or none")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to detect)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "disable audio alerts")
	rootCmd.Flags().BoolVar(&bell, "bell", false, "use the terminal bell instead of synthesized tones")
	rootCmd.Flags().IntVarP(&jumpTo, "jump", "j", 0, "start at the given paragraph number")

	// Config bindings
	_ = viper.BindPFlag("theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("theme", "auto")
	viper.SetDefault("width", 0)
	schedule.SetDefaults()

	rootCmd.AddCommand(configCmd)
}

// tryLoadConfigFromDefaultPlaces looks for a config in the places it is
// usually kept. A missing config is fine; a broken one is reported and
// ignored.
func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "studypace")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("STUDYPACE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("studypace")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("studypace")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return
		}
		log.Warn("Could not parse configuration file", "err", err)
	}
}

// setupLog sends logs to a file when STUDYPACE_DEBUG is set and silences
// them otherwise, since stderr belongs to the TUI.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)
	if os.Getenv("STUDYPACE_DEBUG") == "" {
		return func() error { return nil }, nil
	}

	logFile := os.Getenv("STUDYPACE_LOGFILE")
	if logFile == "" {
		scope := gap.NewScope(gap.User, "studypace")
		var err error
		logFile, err = scope.LogPath("studypace.log")
		if err != nil {
			return nil, fmt.Errorf("unable to resolve log path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return f.Close, nil
}
