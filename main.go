package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"serial-radar.klederson.com/internal/app"
	"serial-radar.klederson.com/internal/config"
	"serial-radar.klederson.com/internal/radar"
	"serial-radar.klederson.com/internal/serialport"
)

type options struct {
	configPath string
	baud       int
	signature  string
	rangeCm    int
	demo       bool
	logFile    string
	verbose    bool
}

// deps are the pieces of the outside world connect talks to.
type deps struct {
	opener      serialport.Opener
	sim         func(signature string) serialport.Opener
	candidates  func(*zap.SugaredLogger) ([]string, error)
	scannerOpts []serialport.ScannerOption
	stderr      io.Writer
}

func defaultDeps() deps {
	return deps{
		opener: serialport.SerialOpener{},
		sim: func(signature string) serialport.Opener {
			return serialport.SimOpener{Name: config.DemoPortName, Signature: signature}
		},
		candidates: serialport.Candidates,
		stderr:     os.Stderr,
	}
}

func main() {
	if err := newRootCmd(&options{}, defaultDeps()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options, d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serial-radar [PORT]",
		Short: "Serial Radar - Terminal display for an Arduino ultrasonic sensor",
		Long: `Serial Radar reads distance readings from an ultrasonic sensor on a
serial port and draws them on a sweeping ASCII radar.

Without PORT, every serial port is reset in turn until one prints the
RADAR_READY signature. With PORT, that port is opened directly.
Use --demo to run against a simulated sensor without hardware.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return err
			}
			if opts.demo && len(args) > 0 {
				return fmt.Errorf("--demo does not take a PORT argument (got %q)", args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, d)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML settings file")
	cmd.Flags().IntVar(&opts.baud, "baud", config.BaudRate, "Serial baud rate")
	cmd.Flags().StringVar(&opts.signature, "signature", config.Signature, "Identity line printed by the sensor on boot")
	cmd.Flags().IntVar(&opts.rangeCm, "range", config.MaxRangeCm, "Maximum radar range in centimeters")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "Run against a simulated sensor (no hardware required, no PORT)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string, d deps) error {
	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return err
	}

	log, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	conn, mode, err := connect(ctx, settings, opts.demo, args, log.Sugar(), d)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Logs share the terminal with the alt screen unless they go to a file.
	sessionLog := zap.NewNop().Sugar()
	if settings.LogFile != "" {
		sessionLog = log.Sugar()
	}

	session := app.NewSession(conn, radar.NewModel(settings.SweepSpeedDeg), sessionLog)
	model := app.New(session, mode, settings.MaxRangeCm)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	_, err = p.Run()
	return err
}

// loadSettings reads the settings file, then applies only the flags the
// user actually set.
func loadSettings(cmd *cobra.Command, opts *options) (config.Settings, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("baud") {
		settings.BaudRate = opts.baud
	}
	if flags.Changed("signature") {
		settings.Signature = opts.signature
	}
	if flags.Changed("range") {
		settings.MaxRangeCm = opts.rangeCm
	}
	if flags.Changed("log-file") {
		settings.LogFile = opts.logFile
	}
	if flags.Changed("verbose") {
		settings.Verbose = opts.verbose
	}

	return settings, settings.Validate()
}

func newLogger(settings config.Settings) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if settings.Verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	if settings.LogFile != "" {
		cfg.OutputPaths = []string{settings.LogFile}
		cfg.ErrorOutputPaths = []string{settings.LogFile}
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// connect opens the radar the way the command line asks: the simulated
// sensor, an explicit port, or auto-detection over every serial port.
func connect(ctx context.Context, settings config.Settings, demo bool, args []string, log *zap.SugaredLogger, d deps) (*serialport.Conn, string, error) {
	opts := serialport.DefaultPortOptions(settings.BaudRate)
	scannerOpts := append([]serialport.ScannerOption{
		serialport.WithLogger(log),
		serialport.WithHandshakeTimeout(settings.HandshakeTimeout),
	}, d.scannerOpts...)

	if demo {
		scanner := serialport.NewScanner(d.sim(settings.Signature), opts, settings.Signature, scannerOpts...)
		conn, err := scanner.Detect(ctx, []string{config.DemoPortName})
		if err != nil {
			return nil, "", err
		}
		return conn, app.ModeDemo, nil
	}

	if len(args) == 1 {
		conn, err := serialport.OpenManual(d.opener, args[0], opts, log)
		if err != nil {
			return nil, "", err
		}
		return conn, app.ModeManual, nil
	}

	candidates, err := d.candidates(log)
	if err == nil {
		var conn *serialport.Conn
		conn, err = serialport.NewScanner(d.opener, opts, settings.Signature, scannerOpts...).Detect(ctx, candidates)
		if err == nil {
			fmt.Fprintf(d.stderr, "Detected radar on %s\n", conn.Name())
			return conn, app.ModeAuto, nil
		}
	}

	if errors.Is(err, serialport.ErrNotFound) {
		printDetectionTips(d.stderr, settings.Signature)
	}
	return nil, "", err
}

func printDetectionTips(w io.Writer, signature string) {
	fmt.Fprintf(w, "\nNo serial port answered with %q.\n\n", signature)
	fmt.Fprintln(w, "Try one of:")
	fmt.Fprintln(w, "  Close any Serial Monitor/Plotter that holds the port")
	fmt.Fprintln(w, "  Check that the sketch prints the signature on boot")
	fmt.Fprintln(w, "  serial-radar COM3            (manual port, no handshake)")
	fmt.Fprintln(w, "  serial-radar /dev/ttyACM0")
	fmt.Fprintln(w, "  serial-radar --demo          (demo mode, no hardware needed)")
}
