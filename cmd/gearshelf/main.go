package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gearshelf/cmd/gearshelf/browser"
	"gearshelf/internal/catalog"
	"gearshelf/internal/config"
	"gearshelf/internal/wishlist"
)

var (
	// Global flags
	configPath string
	dataPath   string
	extraPath  string
	sharedLink string
	verbose    bool

	// Logger for one-shot subcommands
	logger *zap.Logger
)

// rootCmd launches the interactive catalog browser.
var rootCmd = &cobra.Command{
	Use:   "gearshelf",
	Short: "gearshelf - browse curated audio gear in your terminal",
	Long: `gearshelf renders a curated audio-gear catalog as filterable cards
in the terminal: search, category, price-range and picks-only filters,
a locally persisted wishlist, and share links that open the same list
read-only on someone else's machine.

Run without arguments to start the interactive browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive browser owns the terminal and logs to a file
		// instead; it builds its own logger.
		if cmd.Name() == "gearshelf" || cmd.Name() == "browse" {
			return nil
		}
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
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
	RunE: runBrowse,
}

// browseCmd is the explicit spelling of the default action, mostly useful
// for `browse --shared <link>`.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the interactive catalog browser",
	RunE:  runBrowse,
}

// shareCmd groups the share-token utilities.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Encode and decode shareable wishlist links",
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode [product name]...",
	Short: "Build a share link for the given names (or your saved wishlist)",
	RunE:  runShareEncode,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <url-or-token>",
	Short: "Decode a share link or token back into product names",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareDecode,
}

// exportCmd prints the wishlist markdown summary.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print your wishlist as a shareable markdown summary",
	RunE:  runExport,
}

// categoriesCmd lists the dataset categories.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories in dataset order",
	RunE:  runCategories,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to gearshelf.yaml")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "override catalog dataset path")
	rootCmd.PersistentFlags().StringVar(&extraPath, "extra", "", "override supplementary data path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&sharedLink, "shared", "", "open a shared wishlist link or token (read-only)")
	browseCmd.Flags().StringVar(&sharedLink, "shared", "", "open a shared wishlist link or token (read-only)")

	shareCmd.AddCommand(shareEncodeCmd, shareDecodeCmd)
	rootCmd.AddCommand(browseCmd, shareCmd, exportCmd, categoriesCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dataPath != "" {
		cfg.Dataset = dataPath
	}
	if extraPath != "" {
		cfg.Supplementary = extraPath
	}
	return cfg, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fileLogger, err := buildFileLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = fileLogger.Sync() }()

	opts := browser.Options{}
	if sharedLink != "" {
		names, err := wishlist.FromURL(sharedLink)
		if err != nil {
			// A bad token means "no shared wishlist", never a crash.
			fileLogger.Warn("ignoring undecodable share link", zap.Error(err))
			fmt.Fprintln(os.Stderr, "gearshelf: could not decode shared wishlist, opening normally")
		} else {
			opts.SharedNames = names
		}
	}

	return browser.Run(cfg, fileLogger, opts)
}

// buildFileLogger writes browser logs under the state dir so the TUI keeps
// the terminal to itself.
func buildFileLogger(cfg config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.LogPath()}
	zc.ErrorOutputPaths = []string{cfg.LogPath()}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func runShareEncode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		store := wishlist.NewStore(cfg.WishlistPath())
		if err := store.Load(); err != nil {
			logger.Warn("wishlist unreadable", zap.Error(err))
		}
		names = store.Names()
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to encode: no names given and the wishlist is empty")
	}

	link, err := wishlist.ShareURL(cfg.ShareBaseURL, names)
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}

func runShareDecode(cmd *cobra.Command, args []string) error {
	names, err := wishlist.FromURL(args[0])
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFile(cfg.Dataset)
	if err != nil {
		return err
	}

	store := wishlist.NewStore(cfg.WishlistPath())
	if err := store.Load(); err != nil {
		logger.Warn("wishlist unreadable", zap.Error(err))
	}
	if store.Len() == 0 {
		return fmt.Errorf("your wishlist is empty")
	}

	fmt.Print(wishlist.Markdown(store.Names(), cat, cfg.ShareBaseURL))
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFile(cfg.Dataset)
	if err != nil {
		return err
	}
	for _, c := range cat.Categories() {
		fmt.Printf("%-30s %s (%d)\n", c.Key, c.Label, len(c.Products))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
