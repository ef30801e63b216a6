package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/models"
	"github.com/osa911/portfolio-api/internal/repository"
	"github.com/osa911/portfolio-api/internal/server"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply the embedded schema migrations to the PostgreSQL database in DATABASE_URL.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.StoreDriver != config.StorePostgres {
			fail("migrate needs STORE_DRIVER=%s (current: %s)", config.StorePostgres, cfg.StoreDriver)
		}

		err := withSpinner("Applying migrations...", func(ctx context.Context) error {
			store, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Migrate(ctx)
		})
		if err != nil {
			fail("Migration failed: %v", err)
		}
		logger.Info("✅ Database is up to date")
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Inspect contact submissions",
}

var inquiriesCmd = &cobra.Command{
	Use:   "inquiries",
	Short: "Inspect service inquiries",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		var contacts []models.Contact
		withStore(func(ctx context.Context, store repository.Store) (err error) {
			contacts, err = store.ListContacts(ctx)
			return err
		})

		if asJSON {
			printJSON(contacts)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tNAME\tEMAIL\tSERVICE\tBUDGET\tID")
		for _, c := range contacts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				c.CreatedAt.Local().Format(time.DateTime),
				c.Name,
				c.Email,
				models.StringValue(c.Service),
				models.StringValue(c.Budget),
				c.ID,
			)
		}
		w.Flush()
	},
}

var inquiriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service inquiries, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		var inquiries []models.ServiceInquiry
		withStore(func(ctx context.Context, store repository.Store) (err error) {
			inquiries, err = store.ListServiceInquiries(ctx)
			return err
		})

		if asJSON {
			printJSON(inquiries)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tNAME\tEMAIL\tSERVICE\tID")
		for _, q := range inquiries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				q.CreatedAt.Local().Format(time.DateTime),
				q.Name,
				q.Email,
				q.Service,
				q.ID,
			)
		}
		w.Flush()
	},
}

// withStore opens the configured store for fn. The in-memory store belongs
// to the server process, so it is refused here.
func withStore(fn func(ctx context.Context, store repository.Store) error) {
	if cfg.StoreDriver == config.StoreMemory {
		fail("records live in the server's memory; set STORE_DRIVER=%s to inspect them", config.StorePostgres)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		fail("Failed to open store: %v", err)
	}
	defer store.Close()

	if err := fn(ctx, store); err != nil {
		fail("%v", err)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fail("Failed to encode output: %v", err)
	}
}

func initRecordCommands() {
	contactsCmd.AddCommand(contactsListCmd)
	inquiriesCmd.AddCommand(inquiriesListCmd)

	contactsListCmd.Flags().Bool("json", false, "Print records as JSON")
	inquiriesListCmd.Flags().Bool("json", false, "Print records as JSON")
}
