package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"helproom/cmd/helproom/tui"
	"helproom/cmd/helproom/ui"
	"helproom/internal/config"
	"helproom/internal/logging"
	"helproom/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	dbPath  string

	// Logger for headless subcommands; the TUI has its own output.
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "helproom",
	Short: "helproom - IT Help Room Inventory Tracker",
	Long: `helproom tracks quantities of IT equipment across named locations.

Run without arguments to open the interactive inventory screen.
Subcommands offer the same operations for scripts and quick checks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Parent() == nil {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// openStore loads config, initializes logging, and opens the database.
// Callers own the returned store and must Close it.
func openStore() (*store.Store, *config.Config, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cfg, err := config.Load(config.DefaultPath(workspace))
	if err != nil {
		return nil, nil, err
	}

	if dbPath != "" {
		cfg.Database = dbPath
	}

	if err := logging.Initialize(workspace); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}
	logging.Boot("helproom starting, database=%s", cfg.Database)

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	// A corrupt or unreadable file should fail at startup, not on the
	// first keypress.
	if err := st.Ping(); err != nil {
		st.Close()
		return nil, nil, err
	}
	if err := st.SeedIfEmpty(); err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, cfg, nil
}

func runInteractive() error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		st.Close()
		logging.Boot("helproom shut down")
		logging.CloseAll()
	}()

	return tui.Run(st, ui.ThemeFromName(cfg.UI.Theme))
}

// listCmd prints the current inventory, optionally filtered.
var listCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List inventory items",
	Long:  "Lists items, optionally restricted to a location and a case-insensitive name search.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locationID, _ := cmd.Flags().GetString("location")

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		query := store.ItemQuery{LocationID: locationID}
		if len(args) > 0 {
			query.Search = args[0]
		}

		items, err := st.Items(query)
		if err != nil {
			return err
		}
		logger.Debug("listed items", zap.Int("count", len(items)))

		tbl := ui.NewSimpleTable("", []string{"ID", "Item", "Count", "Location", "Flags"})
		for _, it := range items {
			var flags []string
			if it.Deployable {
				flags = append(flags, "deploy")
			}
			if it.IsLowStock() {
				flags = append(flags, "LOW")
			}
			tbl.AddRow(strconv.FormatInt(it.ID, 10), it.Name, strconv.Itoa(it.Count),
				it.LocationName, strings.Join(flags, " "))
		}
		fmt.Print(tbl.View(ui.DefaultStyles()))
		return nil
	},
}

// summaryCmd prints per-location totals.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-location totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		lowOnly, _ := cmd.Flags().GetBool("low")

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var rows []store.LocationSummary
		if lowOnly {
			rows, err = st.LowStockSummary()
		} else {
			rows, err = st.Summary()
		}
		if err != nil {
			return err
		}

		tbl := ui.NewSimpleTable("", []string{"Location", "Items", "Units"})
		for _, ls := range rows {
			tbl.AddRow(ls.Name, strconv.Itoa(ls.ItemCount), strconv.Itoa(ls.TotalCount))
		}
		if view := tbl.View(ui.DefaultStyles()); view != "" {
			fmt.Print(view)
		} else {
			fmt.Println("Nothing to report.")
		}
		return nil
	},
}

// deployCmd subtracts quantities from several items in one transaction.
var deployCmd = &cobra.Command{
	Use:   "deploy ITEM_ID=QTY [ITEM_ID=QTY...]",
	Short: "Deploy equipment (bulk decrement, all-or-nothing)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, err := parseDeployArgs(args)
		if err != nil {
			return err
		}

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Deploy(batch); err != nil {
			return err
		}
		logger.Info("deploy complete", zap.Int("lines", len(batch)))
		fmt.Printf("Deployed %d item type(s).\n", len(batch))
		return nil
	},
}

// parseDeployArgs converts ID=QTY pairs into a deploy batch.
func parseDeployArgs(args []string) ([]store.Deployment, error) {
	var batch []store.Deployment
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected ITEM_ID=QTY, got %q", arg)
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad item id %q: %w", parts[0], err)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad quantity %q: %w", parts[1], err)
		}
		batch = append(batch, store.Deployment{ItemID: id, Quantity: qty})
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].ItemID < batch[j].ItemID })
	return batch, nil
}

// addItemCmd inserts a new item from the command line.
var addItemCmd = &cobra.Command{
	Use:   "add-item NAME",
	Short: "Add an inventory item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		locationID, _ := cmd.Flags().GetString("location")
		count, _ := cmd.Flags().GetInt("count")
		deployable, _ := cmd.Flags().GetBool("deployable")

		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		it, err := st.AddItem(store.ItemDraft{
			Name:       args[0],
			Count:      count,
			Deployable: deployable,
			LocationID: locationID,
		})
		if err != nil {
			return err
		}
		logger.Info("item added", zap.Int64("id", it.ID), zap.String("name", it.Name))
		fmt.Printf("Added %q (id %d) at %s with count %d.\n", it.Name, it.ID, it.LocationName, it.Count)
		return nil
	},
}

// locationsCmd lists locations with their IDs for use in flags.
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		locations, err := st.Locations()
		if err != nil {
			return err
		}

		tbl := ui.NewSimpleTable("", []string{"ID", "Name"})
		for _, loc := range locations {
			tbl.AddRow(loc.ID, loc.Name)
		}
		fmt.Print(tbl.View(ui.DefaultStyles()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging for subcommands")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "inventory database path (overrides config)")

	listCmd.Flags().String("location", "", "restrict to one location ID")
	summaryCmd.Flags().Bool("low", false, "only low-stock items")
	addItemCmd.Flags().String("location", "", "location ID the item lives at")
	addItemCmd.Flags().Int("count", 0, "initial count")
	addItemCmd.Flags().Bool("deployable", true, "item may be consumed by deploy")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(addItemCmd)
	rootCmd.AddCommand(locationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
