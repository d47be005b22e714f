// Package imports implements the data import commands: grant imports
// from the Gateway to Research registry and bulk loads of reference
// organisations and category schemes.
package imports

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"floe/internal/application/importer"
	"floe/internal/infrastructure/bulkload"
	"floe/internal/infrastructure/config"
	"floe/internal/infrastructure/database"
	"floe/internal/infrastructure/gtr"
	"floe/internal/infrastructure/repository"
	"floe/internal/shared/db"
	"floe/internal/shared/logger"
)

var (
	env        string
	references []string
	file       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalogue data",
		Long:  `Import grants from the Gateway to Research registry and bulk-load reference organisations and category schemes.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newGrantCommand(),
		newOrganisationsCommand(),
		newCategoriesCommand(),
	)

	return cmd
}

func newGrantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Import grants by external reference",
		Long:  `Fetch each referenced project from the Gateway to Research registry and reconcile it into the catalogue. Unmapped-entity failures are reported and logged to the side file without failing the command.`,
		RunE:  runGrant,
	}

	cmd.Flags().StringSliceVarP(&references, "reference", "r", nil, "External grant reference, repeatable (required)")
	cmd.MarkFlagRequired("reference")

	return cmd
}

func newOrganisationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organisations",
		Short: "Bulk-load organisations",
		Long:  `Upsert organisations from a JSON file, keyed by registry identifier.`,
		RunE:  runOrganisations,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the organisations JSON file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Bulk-load category schemes",
		Long:  `Upsert a category scheme and its terms from a YAML file, keyed by namespace and term identifier.`,
		RunE:  runCategories,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the category scheme YAML file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

func runGrant(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	conn := database.Get()
	grantRepo := repository.NewGrantRepository(conn, log)
	projectRepo := repository.NewProjectRepository(conn, log)
	allocationRepo := repository.NewAllocationRepository(conn, log)
	participantRepo := repository.NewParticipantRepository(conn, log)
	personRepo := repository.NewPersonRepository(conn, log)
	organisationRepo := repository.NewOrganisationRepository(conn, log)
	schemeRepo := repository.NewCategorySchemeRepository(conn, log)
	termRepo := repository.NewCategoryTermRepository(conn, log)
	categorisationRepo := repository.NewCategorisationRepository(conn, log)

	tables, err := gtr.LoadMappingTables(&cfg.GtR.MappingTables, log)
	if err != nil {
		return fmt.Errorf("failed to load mapping tables: %w", err)
	}

	client := gtr.NewClient(&cfg.GtR, log)
	reconciler := importer.NewReconciler(
		grantRepo, projectRepo, allocationRepo, participantRepo,
		personRepo, organisationRepo,
		schemeRepo, termRepo, categorisationRepo,
		tables, log,
	)
	txManager := db.NewTransactionManager(conn)

	useCase := importer.NewImportGrantUseCase(client, reconciler, grantRepo, txManager, cfg.GtR.UnmappedLog, log)

	for _, reference := range references {
		result, err := useCase.Execute(cmd.Context(), reference)
		if result != nil && result.Message != "" {
			fmt.Println(result.Message)
		}
		if err == nil {
			continue
		}

		// Unmapped entities and unknown references are operator
		// problems, not program failures: report and keep going.
		if gtr.IsUnmapped(err) || stderrors.Is(err, gtr.ErrProjectNotFound) {
			continue
		}

		return fmt.Errorf("import of %s failed: %w", reference, err)
	}

	return nil
}

func runOrganisations(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	organisationRepo := repository.NewOrganisationRepository(database.Get(), log)
	loader := bulkload.NewOrganisationLoader(organisationRepo, log)

	count, err := loader.Load(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("organisation load failed: %w", err)
	}

	fmt.Printf("Loaded %d organisations from %s\n", count, file)
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	conn := database.Get()
	schemeRepo := repository.NewCategorySchemeRepository(conn, log)
	termRepo := repository.NewCategoryTermRepository(conn, log)
	loader := bulkload.NewCategoryLoader(schemeRepo, termRepo, log)

	count, err := loader.Load(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("category load failed: %w", err)
	}

	fmt.Printf("Loaded %d category terms from %s\n", count, file)
	return nil
}
