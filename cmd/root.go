package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/adapters/repository"
	"github.com/kamal-hamza/svgcheck/internal/adapters/validator"
	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/config"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
	"github.com/kamal-hamza/svgcheck/pkg/workspace"
)

var (
	// Global flags
	rootDir    string
	configFile string
	javaFlag   string
	vnuJarFlag string

	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config

	// Services
	checkService     *services.CheckService
	inventoryService *services.InventoryService

	// Adapters
	assetRepo    *repository.FileAssetRepository
	readmeRepo   *repository.ReadmeRepository
	vnuValidator *validator.VnuValidator
)

// errChecksFailed is returned when the run completed but assertions failed.
// The report has already been printed, so Execute only sets the exit status.
var errChecksFailed = errors.New("checks failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "svgcheck",
	Short: "Check SVG icons against the README and the W3C validator",
	Long: ui.StyleTitle.Render("svgcheck") + " - SVG icon consistency checker\n\n" +
		"Verifies that every icon in the svg directory is under the size budget,\n" +
		"is listed in the README with its exact size, and passes the Nu HTML Checker.\n" +
		"Also verifies that every icon listed in the README exists on disk.\n\n" +
		"Running svgcheck with no subcommand is the same as 'svgcheck check'.",
	PersistentPreRunE: initializeApp,
	RunE:              runCheck,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "Project directory containing the README and svg directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&javaFlag, "java", "", "Java binary used to run the validator")
	rootCmd.PersistentFlags().StringVar(&vnuJarFlag, "vnu-jar", "", "Path to vnu.jar")

	// The root command runs the checks, so it takes the same flags as 'check'
	addCheckFlags(rootCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Version needs nothing from the project
	if cmd.Name() == "version" {
		return nil
	}

	w, err := workspace.New(rootDir, configFile)
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	if !w.Exists() {
		return fmt.Errorf("project directory not found: %s", w.RootPath)
	}
	appWorkspace = w

	// init writes the config, it does not read it
	if cmd.Name() == "init" {
		return nil
	}

	cfg, err := config.Load(w.ConfigPath)
	if err != nil {
		return err
	}
	if javaFlag != "" {
		cfg.Java = javaFlag
	}
	if vnuJarFlag != "" {
		cfg.VnuJar = vnuJarFlag
	}
	appConfig = cfg

	ui.SetTheme(cfg.ColorTheme)
	appWorkspace.Apply(cfg)

	// The jar path is resolved against the project root like every other path
	if !filepath.IsAbs(cfg.VnuJar) {
		cfg.VnuJar = filepath.Join(appWorkspace.RootPath, cfg.VnuJar)
	}

	// Initialize adapters
	assetRepo = repository.NewFileAssetRepository(appWorkspace)
	readmeRepo = repository.NewReadmeRepository(appWorkspace)
	vnuValidator = validator.NewVnuValidator(cfg)

	// Initialize services
	checkService = services.NewCheckService(readmeRepo, assetRepo, vnuValidator, appWorkspace.SVGPath, cfg.SizeBudget)
	inventoryService = services.NewInventoryService(readmeRepo, assetRepo)

	return nil
}

// getContext returns the command context, falling back to Background
func getContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
