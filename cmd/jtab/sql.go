package main

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/arnodel/jsontable"
	"github.com/arnodel/jsontable/internal/sqlcopy"
)

func addDatabaseFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVar(&a.driver, "driver", "", "database driver: sqlite, mysql, postgres")
	cmd.Flags().StringVar(&a.dsn, "dsn", "", "data source name, e.g. a file path for sqlite")
}

// openDB opens the configured database.  The driver names accepted in the
// configuration are the names the drivers register under.
func (a *app) openDB() (*sql.DB, sqlcopy.Dialect, error) {
	driver := a.cfg.Database.Driver
	if driver == "" {
		return nil, 0, errors.New("no database driver (use --driver or the configuration file)")
	}
	dialect, err := sqlcopy.DialectFor(driver)
	if err != nil {
		return nil, 0, err
	}
	db, err := sql.Open(driver, a.cfg.Database.DSN)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", driver, err)
	}
	return db, dialect, nil
}

func newImportCmd(a *app) *cobra.Command {
	var (
		table  string
		create bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Insert the rows of a document into a database table",
		Long: `Insert the rows of a document into a database table, FILE being "-" for
standard input.  All the rows are inserted in one transaction.

With --create the table is created first, with column types taken from the
first row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table == "" {
				return errors.New("missing --table")
			}
			db, dialect, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			r, err := a.openReader(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			n, err := sqlcopy.Import(cmd.Context(), db, table, r, sqlcopy.ImportOptions{
				Dialect:     dialect,
				CreateTable: create,
			})
			if err != nil {
				return err
			}
			a.logger.Info("imported", "table", table, "rows", n)
			return nil
		},
	}
	addDatabaseFlags(cmd, a)
	cmd.Flags().StringVar(&table, "table", "", "table to insert into")
	cmd.Flags().BoolVar(&create, "create", false, "create the table")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "export [OUT]",
		Short: "Write the result of a query as a document",
		Long: `Write the result of a query as a document to the file OUT, or to standard
output when OUT is omitted.  A single row is written as a bare object.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if query == "" {
				return errors.New("missing --query")
			}
			db, _, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			opts := []jsontable.Option{
				jsontable.WithNotifyInterval(a.cfg.NotifyInterval),
				a.progress("write"),
			}
			var w *jsontable.Writer
			if len(args) == 1 {
				w, err = jsontable.Create(args[0], opts...)
				if err != nil {
					return err
				}
			} else {
				w = jsontable.NewWriter(a.stdout, opts...)
			}
			defer func() {
				if cerr := w.Close(); err == nil {
					err = cerr
				}
			}()

			n, err := sqlcopy.Export(cmd.Context(), db, query, w)
			if err != nil {
				return err
			}
			a.logger.Info("exported", "rows", n)
			return nil
		},
	}
	addDatabaseFlags(cmd, a)
	cmd.Flags().StringVar(&query, "query", "", "SQL query to run")
	return cmd
}
