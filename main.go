package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jacktrack.app/internal/api"
	"jacktrack.app/internal/app"
	"jacktrack.app/internal/config"
	"jacktrack.app/internal/course"
	"jacktrack.app/internal/geo"
	"jacktrack.app/internal/logging"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/settings"
	"jacktrack.app/internal/stats"
	"jacktrack.app/internal/storage"
	"jacktrack.app/internal/tracking"
)

var (
	flagDemo      bool
	flagDB        string
	flagEphemeral bool
	flagRange     float64
	flagAddr      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jacktrack",
		Short: "JackTrack - golf ball tracker, scorecard and course map for the terminal",
		Long: `JackTrack pairs with Bluetooth golf ball trackers, shows them on a course
map around you, keeps your scorecard and remembers your round history.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo for demonstration mode without Bluetooth hardware.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default $JACKTRACK_DB or jacktrack.db)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep everything in memory; nothing is saved")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with simulated trackers (no Bluetooth required)")
	rootCmd.Flags().Float64Var(&flagRange, "range", config.MapRange, "Initial map range in meters")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved rounds and statistics over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default $JACKTRACK_ADDR or :8080)")

	roundsCmd := &cobra.Command{
		Use:   "rounds",
		Short: "List saved rounds",
		RunE:  runRounds,
	}

	rootCmd.AddCommand(serveCmd, roundsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	kv, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	rounds := storage.NewRounds(kv)
	session := scoring.NewSession(rounds)
	c := course.Default()
	resumeOrStart(ctx, session, rounds, c)

	prefs := settings.NewStore(kv)
	if _, err := prefs.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}

	home := geo.Point{Lat: cfg.HomeLat, Lon: cfg.HomeLon}
	store := tracking.NewBallStore()

	var provider tracking.Provider
	var telemetry *tracking.Telemetry
	if flagDemo {
		provider = tracking.NewMockProvider(0)
		tracking.SeedDemoBalls(store, home)
		telemetry = tracking.NewTelemetry(store, rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		ble := tracking.NewBLEProvider(0)
		if err := ble.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./jacktrack")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./jacktrack")
			fmt.Fprintln(os.Stderr, "  ./jacktrack --demo    (demo mode, no hardware needed)")
			return err
		}
		provider = ble
	}

	tracker := tracking.NewTracker(store, provider)
	locator := geo.NewStaticLocator(home)
	app.BindSettings(prefs, tracker, locator)

	model := app.New(ctx, app.Deps{
		Session:   session,
		History:   rounds,
		Tracker:   tracker,
		Settings:  prefs,
		Locator:   locator,
		Telemetry: telemetry,
		Course:    c,
		Home:      home,
		Range:     flagRange,
		Demo:      flagDemo,
	})

	log.Info().Bool("demo", flagDemo).Str("round", session.Round().ID).Msg("starting")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	tracker.CancelScan()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// resumeOrStart continues the newest unfinished round, or starts a new one.
func resumeOrStart(ctx context.Context, session *scoring.Session, rounds *storage.Rounds, c course.Course) {
	list, err := rounds.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("round index unavailable")
	}
	if recent := stats.Recent(list, 1); len(recent) == 1 && !recent[0].IsComplete {
		if err := session.Load(ctx, recent[0].ID); err == nil {
			log.Info().Str("round", recent[0].ID).Msg("resumed round")
			return
		}
	}
	session.StartRound(c.ID, c.Name)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	closer, err := logging.Setup(cfg.LogLevel, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	kv, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	addr := cfg.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.New(storage.NewRounds(kv)).Start(ctx, addr)
}

func runRounds(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	kv, err := openKV(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	list, err := storage.NewRounds(kv).List(cmd.Context())
	if err != nil {
		return err
	}
	return printRounds(cmd.OutOrStdout(), list)
}

func printRounds(w io.Writer, list []scoring.Summary) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No saved rounds.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCOURSE\tSCORE\tTO PAR\tBEST\tWORST\tSTATUS\tID")
	for _, s := range stats.Recent(list, 0) {
		status := "complete"
		if !s.IsComplete {
			status = "in progress"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t#%d\t#%d\t%s\t%s\n",
			s.StartedAt.Local().Format("2006-01-02"), s.CourseName, s.TotalStrokes,
			scoring.FormatToPar(s.ToPar()), s.BestHole, s.WorstHole, status, s.ID)
	}
	st := stats.Compute(list)
	fmt.Fprintf(tw, "\n%d rounds\taverage %d\tbest %d\ttrend %+.1f\n", st.TotalRounds, st.AverageScore, st.BestRound, st.Trend)
	return tw.Flush()
}

func openKV(cfg config.Config) (storage.KV, error) {
	if flagEphemeral {
		return storage.NewMemoryKV(), nil
	}
	path := cfg.DBPath
	if flagDB != "" {
		path = flagDB
	}
	kv, err := storage.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return kv, nil
}
