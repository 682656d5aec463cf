package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yusiwen/mapper"
	"github.com/yusiwen/mapper/private/named"
	"go.uber.org/zap"
)

type options struct {
	config  string
	table   string
	ids     []string
	bind    bool
	verbose bool
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "mapper-sql",
		Short: "Print the SQL statements synthesized for declared tables",
		Long: `mapper-sql reads table declarations from a yaml, json or toml file
and prints the insert, select and update statements synthesized for each
table. Statements are printed with named placeholders, or with the
placeholders of the configured dialect when --bind is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), &opts)
		},
	}

	opts.addFlags(cmd.Flags())
	return cmd
}

func (opts *options) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&opts.config, "config", "c", "tables.yaml", "table declaration file")
	flags.StringVarP(&opts.table, "table", "t", "", "print statements for this table only")
	flags.StringSliceVar(&opts.ids, "ids", nil, "primary keys for a select by primary key statement")
	flags.BoolVar(&opts.bind, "bind", false, "print statements with dialect placeholders")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(w io.Writer, opts *options) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	config, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	logger.Debug("loaded config",
		zap.String("file", opts.config),
		zap.String("dialect", config.Dialect),
		zap.Int("tables", len(config.Tables)),
	)

	registry := config.registry(mapper.WithLogger(logger))
	found := false
	for _, table := range config.Tables {
		if opts.table != "" && opts.table != table.Name {
			continue
		}
		found = true
		tbl, err := table.declare(registry)
		if err != nil {
			return err
		}
		logger.Debug("declared table",
			zap.String("table", tbl.Name()),
			zap.String("primaryKey", tbl.PrimaryKey()),
			zap.Strings("columns", tbl.Columns()),
		)
		p := printer{w: w, dialect: registry.Dialect(), bind: opts.bind}
		if err := p.printTable(tbl, opts.ids); err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("table %s is not declared in %s", opts.table, opts.config)
	}
	return nil
}

type printer struct {
	w       io.Writer
	dialect mapper.Dialect
	bind    bool
}

var headingColor = color.New(color.FgCyan, color.Bold)

func (p printer) printTable(tbl *mapper.Table, ids []string) error {
	headingColor.Fprintf(p.w, "-- %s\n", tbl.Name())
	statements := []string{
		mapper.InsertSQL(tbl),
		mapper.InsertWithoutPrimaryKeySQL(tbl),
		mapper.SelectOneSQL(tbl),
		mapper.UpdateSQL(tbl),
	}
	if len(ids) > 0 {
		statements = append(statements, mapper.SelectByPrimaryKeyInSQL(tbl, ids))
	}
	for _, query := range statements {
		if p.bind {
			var err error
			if query, err = p.bindQuery(query); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(p.w, query+";"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

// bindQuery replaces the named placeholders with those of the dialect.
func (p printer) bindQuery(query string) (string, error) {
	stmt, err := named.Compile(query)
	if err != nil {
		return "", err
	}
	sqlText, _, err := stmt.Bind(p.dialect, func(string) (interface{}, error) {
		return nil, nil
	})
	return sqlText, err
}
