package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/calleviva/trucksim/internal/models"
	"github.com/calleviva/trucksim/internal/output"
	"github.com/calleviva/trucksim/internal/repositories"
	"github.com/calleviva/trucksim/internal/repositories/postgres"
	"github.com/calleviva/trucksim/internal/sim"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trucksim",
	Short: "Runs the food-truck business simulation headlessly",
	Long:  `trucksim drives the food-truck day simulation without a renderer: customers arrive, queue, get served or lost, and each business day settles into the session ledger. Events stream to console, files, Kafka or Parquet.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := run(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int64("seed", 42, "Random seed for simulation")
	rootCmd.Flags().Int("days", 1, "Number of business days to simulate")
	rootCmd.Flags().Int("speed", 1, "Simulation speed (1, 2 or 5)")
	rootCmd.Flags().String("location", "ucr", "Location code to operate from")
	rootCmd.Flags().String("game-id", "", "Existing game session to resume")
	rootCmd.Flags().String("player-id", "", "Player owning the session")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-format", "console", "Output format: console, json or parquet")
	rootCmd.Flags().String("output-path", "", "Base path for file output")

	viper.BindPFlag("simulation.seed", rootCmd.Flags().Lookup("seed"))
	viper.BindPFlag("simulation.days", rootCmd.Flags().Lookup("days"))
	viper.BindPFlag("simulation.speed", rootCmd.Flags().Lookup("speed"))
	viper.BindPFlag("simulation.location", rootCmd.Flags().Lookup("location"))
	viper.BindPFlag("game_id", rootCmd.Flags().Lookup("game-id"))
	viper.BindPFlag("player_id", rootCmd.Flags().Lookup("player-id"))
	viper.BindPFlag("kafka.enabled", rootCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka.broker_list", rootCmd.Flags().Lookup("kafka-broker-list"))
	viper.BindPFlag("output.format", rootCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output.path", rootCmd.Flags().Lookup("output-path"))
}

func initConfig() {
	viper.AutomaticEnv()
}

func run(cfg *models.Config) error {
	catalog := models.DefaultCatalog()

	var repo repositories.SessionRepository
	if cfg.Database.Enabled {
		pool, err := postgres.Connect(context.Background(), &cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		repo = postgres.NewSessionRepository(pool)
	}

	session, err := resolveSession(cfg, repo)
	if err != nil {
		return err
	}

	sink, err := output.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	ctrl := sim.NewController(cfg.Simulation, catalog, session)
	defer ctrl.Stop()
	ctrl.SetSink(sink)
	if repo != nil {
		ctrl.SetCheckpoint(func(s models.GameSession) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := repo.Save(ctx, &s); err != nil {
				log.Printf("Failed to checkpoint session %s: %v", s.ID, err)
			}
		})
	}

	dayMinutes := int((cfg.Simulation.CloseHour - cfg.Simulation.OpenHour) * 60)
	dayDone := make(chan sim.Snapshot, 1)
	unsubscribe := ctrl.Subscribe(func(snap sim.Snapshot) {
		if snap.State == sim.StateDayEnded {
			select {
			case dayDone <- snap:
			default:
			}
		}
	})
	defer unsubscribe()

	log.Printf("Session %s: simulating %d day(s) at %s, speed %dx",
		session.ID, cfg.Simulation.Days, ctrl.Snapshot().Location.Name, cfg.Simulation.Speed)

	for day := 0; day < cfg.Simulation.Days; day++ {
		bar := progressbar.NewOptions(dayMinutes,
			progressbar.OptionSetDescription(fmt.Sprintf("day %d", ctrl.Snapshot().Day)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		barSub := ctrl.Subscribe(func(snap sim.Snapshot) {
			_ = bar.Set(int((snap.Hour - cfg.Simulation.OpenHour) * 60))
		})

		ctrl.Play()
		snap := <-dayDone
		barSub()
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)

		log.Printf("Day %d closed: served=%d lost=%d revenue=%d money=%d reputation=%.2f",
			snap.Day, snap.CustomersServed, snap.CustomersLost, snap.Revenue, snap.Money, snap.Reputation)
	}

	return nil
}

// resolveSession loads the requested session, or mints a fresh one
// (persisted when a repository is configured).
func resolveSession(cfg *models.Config, repo repositories.SessionRepository) (models.GameSession, error) {
	if cfg.GameID != "" && repo != nil {
		loaded, err := repo.Load(context.Background(), cfg.GameID)
		if err != nil {
			return models.GameSession{}, fmt.Errorf("failed to load session %s: %w", cfg.GameID, err)
		}
		return *loaded, nil
	}

	session := models.GameSession{
		ID:              cuid.New(),
		PlayerID:        cfg.PlayerID,
		GameDay:         1,
		Money:           cfg.Simulation.StartingMoney,
		CurrentLocation: cfg.Simulation.Location,
		Status:          models.SessionStatusActive,
		CreatedAt:       time.Now().UTC(),
	}
	if cfg.GameID != "" {
		session.ID = cfg.GameID
	}
	if repo != nil {
		if err := repo.Create(context.Background(), &session); err != nil {
			return models.GameSession{}, fmt.Errorf("failed to create session: %w", err)
		}
	}
	return session, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
