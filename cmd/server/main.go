package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clinic-assistant/internal/config"
	"clinic-assistant/internal/database"
	"clinic-assistant/internal/handlers"
	"clinic-assistant/internal/models"
	"clinic-assistant/internal/server"
	"clinic-assistant/internal/triage"
	"clinic-assistant/internal/utils"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clinic-assistant",
		Short:        "Clinical assistant API server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(prescriptionCmd())
	rootCmd.AddCommand(historyCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Create missing tables and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			if cfg.UsesDefaultToken() {
				logger.Warn().Msg("AUTH_TOKEN is not set; the placeholder token is accepted. Set AUTH_TOKEN before exposing this server.")
			}
			if !cfg.LLMConfigured() {
				logger.Warn().Msg("Azure OpenAI is not fully configured; triage endpoints will return the safety fallback")
			}

			svc := triage.NewService(triage.Credentials{
				Endpoint:   cfg.AzureEndpoint,
				APIKey:     cfg.AzureKey,
				Deployment: cfg.AzureDeployment,
				APIVersion: cfg.AzureAPIVersion,
			}, triage.WithGeneration(cfg.LLMTemperature, cfg.LLMMaxTokens))

			h := handlers.NewHandler(database.NewStore(db), svc, logger,
				handlers.WithStrictPatientIDs(cfg.StrictPatientIDs))
			router := server.NewRouter(cfg, h, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, cfg, router, logger)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create any missing tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("schema is up to date")
			return nil
		},
	}
}

func prescriptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescription",
		Short: "Manage prescriptions",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a prescription for a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetUint("patient-id")
			medication, _ := cmd.Flags().GetString("medication")
			instructions, _ := cmd.Flags().GetString("instructions")
			if patientID == 0 || medication == "" {
				return fmt.Errorf("--patient-id and --medication are required")
			}

			_, _, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			rx := models.Prescription{PatientID: patientID, Medication: medication, Instructions: instructions}
			if err := database.NewStore(db).CreatePrescription(cmd.Context(), &rx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded prescription %d for patient %d at %s\n",
				rx.ID, rx.PatientID, utils.FormatISOTimestamp(rx.CreatedAt))
			return nil
		},
	}
	addCmd.Flags().Uint("patient-id", 0, "Patient the prescription belongs to")
	addCmd.Flags().String("medication", "", "Medication name")
	addCmd.Flags().String("instructions", "", "Dosage instructions")
	cmd.AddCommand(addCmd)

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print a patient's conversation turns, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetUint("patient-id")
			if patientID == 0 {
				return fmt.Errorf("--patient-id is required")
			}

			_, _, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			turns, err := database.NewStore(db).TurnsForPatient(cmd.Context(), patientID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range turns {
				fmt.Fprintf(out, "%s  %-9s  %s\n", utils.FormatISOTimestamp(t.CreatedAt), t.Role, t.Content)
			}
			return nil
		},
	}
	cmd.Flags().Uint("patient-id", 0, "Patient whose history to print")
	return cmd
}

// bootstrap loads config, builds the logger and opens the database.
func bootstrap() (*config.Config, zerolog.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	logger := newLogger(cfg)

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, logger, nil, err
	}
	logger.Info().Msg("connected to database")
	return cfg, logger, db, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout)
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

