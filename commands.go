package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/camden-git/photoopsbackend/config"
	"github.com/camden-git/photoopsbackend/database"
	"github.com/camden-git/photoopsbackend/handlers"
	"github.com/camden-git/photoopsbackend/importer"
	"github.com/camden-git/photoopsbackend/repository"
)

// fixed export layout used by --all-2025
const (
	contacts2025File = "contacts-2025-11-26.csv"
	orders2025File   = "orders-from-2025-01-01-to-2025-12-31.csv"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "photoops",
		Short:         "Photography ops backend: ShootProof import and lookup API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newImportCmd(cfg))
	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newHistoryCmd(cfg))

	return root
}

func newImportCmd(cfg config.Config) *cobra.Command {
	var (
		contactsPath string
		ordersPath   string
		dryRun       bool
		all2025      bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import ShootProof CSV exports into the photography database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all2025 {
				contactsPath = filepath.Join(cfg.DataDir, contacts2025File)
				ordersPath = filepath.Join(cfg.DataDir, "2025", orders2025File)
			}
			if contactsPath == "" && ordersPath == "" {
				return cmd.Help()
			}
			return runImport(cfg, contactsPath, ordersPath, dryRun)
		},
	}

	cmd.Flags().StringVar(&contactsPath, "contacts", "", "Path to contacts CSV")
	cmd.Flags().StringVar(&ordersPath, "orders", "", "Path to orders CSV")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without making changes")
	cmd.Flags().BoolVar(&all2025, "all-2025", false, "Import all 2025 data from standard paths")

	return cmd
}

func runImport(cfg config.Config, contactsPath, ordersPath string, dryRun bool) error {
	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.AutoMigrateModels(db); err != nil {
		return err
	}
	if err := database.EnsureImportRunSchema(sqlDB); err != nil {
		return err
	}

	familyRepo := repository.NewFamilyRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	if contactsPath != "" {
		if err := importContactsFile(sqlDB, familyRepo, contactsPath, dryRun); err != nil {
			return err
		}
	}
	if ordersPath != "" {
		if err := importOrdersFile(sqlDB, familyRepo, orderRepo, ordersPath, dryRun); err != nil {
			return err
		}
	}

	fmt.Println("\nImport complete")
	return nil
}

func importContactsFile(auditDB *sql.DB, families *repository.FamilyRepository, path string, dryRun bool) error {
	printImportHeader("contacts", path, dryRun)

	rows, err := importer.OpenCSV(path)
	if err != nil {
		return err
	}
	defer rows.Close()

	started := time.Now()
	stats, err := importer.NewContacts(families, dryRun).Run(rows)
	if err != nil {
		return err
	}

	recordRun(auditDB, database.ImportRun{
		ID:         uuid.NewString(),
		Kind:       "contacts",
		SourcePath: path,
		DryRun:     dryRun,
		Created:    stats.Created,
		Updated:    stats.Updated,
		Skipped:    stats.Skipped,
		StartedAt:  started.Unix(),
		FinishedAt: time.Now().Unix(),
	})
	return nil
}

func importOrdersFile(auditDB *sql.DB, families *repository.FamilyRepository, orders *repository.OrderRepository, path string, dryRun bool) error {
	printImportHeader("orders", path, dryRun)

	rows, err := importer.OpenCSV(path)
	if err != nil {
		return err
	}
	defer rows.Close()

	started := time.Now()
	stats, err := importer.NewOrders(families, orders, dryRun).Run(rows)
	if err != nil {
		return err
	}

	recordRun(auditDB, database.ImportRun{
		ID:         uuid.NewString(),
		Kind:       "orders",
		SourcePath: path,
		DryRun:     dryRun,
		Created:    stats.Created,
		Skipped:    stats.Skipped,
		StartedAt:  started.Unix(),
		FinishedAt: time.Now().Unix(),
	})
	return nil
}

func printImportHeader(kind, path string, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[DRY RUN] "
	}
	fmt.Printf("\n%sImporting %s from: %s\n", prefix, kind, path)
}

// recordRun appends to the audit log; a failure there never fails an
// import that already committed.
func recordRun(auditDB *sql.DB, run database.ImportRun) {
	if err := database.RecordImportRun(auditDB, run); err != nil {
		log.Printf("warning: failed to record import run: %v", err)
	}
}

func newServeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only photography ops API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitGormDB(cfg.DatabasePath)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.AutoMigrateModels(db); err != nil {
				return err
			}
			if err := database.EnsureImportRunSchema(sqlDB); err != nil {
				return err
			}

			familyRepo := repository.NewFamilyRepository(db)
			orderRepo := repository.NewOrderRepository(db)

			familyHandler := &handlers.FamilyHandler{FamilyRepo: familyRepo, OrderRepo: orderRepo}
			orderHandler := &handlers.OrderHandler{OrderRepo: orderRepo}
			importHandler := &handlers.ImportRunHandler{DB: sqlDB}

			r := chi.NewRouter()

			corsHandler := cors.New(cors.Options{
				AllowedOrigins: []string{"http://localhost:5173"}, //TODO: configurable
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
				MaxAge:         300,
			})

			r.Use(middleware.RequestID)
			r.Use(middleware.RealIP)
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
			r.Use(middleware.Timeout(60 * time.Second))
			r.Use(corsHandler.Handler)

			r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
				if err := sqlDB.Ping(); err != nil {
					handlers.WriteAPIError(w, http.StatusServiceUnavailable, "db_unavailable", "database ping failed")
					return
				}
				handlers.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
			})

			r.Route("/api", func(r chi.Router) {
				r.Use(handlers.BearerAuth(cfg.BearerToken))

				r.Route("/families", func(r chi.Router) {
					r.Get("/", familyHandler.ListFamilies)
					r.Route("/{family_key}", func(r chi.Router) {
						r.Get("/", familyHandler.GetFamily)
						r.Get("/orders", familyHandler.GetFamilyOrders)
					})
				})

				r.Get("/orders", orderHandler.ListOrders)
				r.Get("/imports", importHandler.ListImportRuns)
			})

			log.Printf("Using database: %s", cfg.DatabasePath)
			log.Printf("Server listening on %s", cfg.ListenAddr)
			server := &http.Server{
				Addr:         cfg.ListenAddr,
				Handler:      r,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}
			return server.ListenAndServe()
		},
	}
}

func newHistoryCmd(cfg config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent import runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitGormDB(cfg.DatabasePath)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.EnsureImportRunSchema(sqlDB); err != nil {
				return err
			}

			runs, err := database.ListImportRuns(sqlDB, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No import runs recorded")
				return nil
			}

			for _, run := range runs {
				fmt.Println(formatImportRun(run))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

// formatImportRun renders one history line. Orders passes never update
// existing records, so their lines omit the updated count.
func formatImportRun(run database.ImportRun) string {
	counts := fmt.Sprintf("%d created, %d updated, %d skipped", run.Created, run.Updated, run.Skipped)
	if run.Kind == "orders" {
		counts = fmt.Sprintf("%d created, %d skipped", run.Created, run.Skipped)
	}
	mark := ""
	if run.DryRun {
		mark = " (dry run)"
	}
	return fmt.Sprintf("%s  %-8s %s%s  %s",
		time.Unix(run.StartedAt, 0).Format("2006-01-02 15:04:05"),
		run.Kind, counts, mark, run.SourcePath)
}
