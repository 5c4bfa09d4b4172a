package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ncobase/recordlist/clipboard"
	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/linkhandler"
	"github.com/ncobase/recordlist/logger"
	"github.com/ncobase/recordlist/recordlist"
	"github.com/ncobase/recordlist/router"
	"github.com/ncobase/recordlist/store"
	"github.com/ncobase/recordlist/version"
)

// NewStartCommand creates the start command
func NewStartCommand() *cobra.Command {
	var configFile string
	var fileRoot string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the record browsing server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}

			cleanup, err := logger.Init(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %v", err)
			}
			defer cleanup()

			ctx := context.Background()
			schemas := store.SchemasFromConfig(cfg.Tables)

			st, err := store.OpenSQL(ctx, cfg.Data.Database, schemas)
			if err != nil {
				return fmt.Errorf("failed to open record store: %v", err)
			}
			defer st.Close()

			var clips clipboard.Store = clipboard.NewMemStore()
			if cfg.Data.Redis != nil && cfg.Data.Redis.Addr != "" {
				rs, err := clipboard.OpenRedis(ctx, cfg.Data.Redis, clipboard.DefaultTTL)
				if err != nil {
					return fmt.Errorf("failed to open clipboard store: %v", err)
				}
				clips = rs
			}

			fs := &store.OSFileSystem{Root: fileRoot}
			registry, err := linkhandler.NewRegistry(cfg.Browser.Handlers, map[string]linkhandler.Factory{
				"page":   func() linkhandler.Handler { return linkhandler.NewPageHandler(st, schemas) },
				"file":   func() linkhandler.Handler { return linkhandler.NewFileHandler(fs) },
				"folder": func() linkhandler.Handler { return linkhandler.NewFolderHandler(fs) },
				"url":    func() linkhandler.Handler { return linkhandler.NewURLHandler() },
				"mail":   func() linkhandler.Handler { return linkhandler.NewMailHandler() },
			})
			if err != nil {
				return fmt.Errorf("invalid link handler configuration: %v", err)
			}

			engine := recordlist.NewEngine(st, schemas, &store.StaticPermissions{}, cfg.List)

			srv := &http.Server{
				Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
				Handler:           router.New(&router.Service{Engine: engine, Registry: registry, Browser: cfg.Browser, Clips: clips}),
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Infof(ctx, "%s listening on %s", cfg.AppName, srv.Addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	cmd.Flags().StringVar(&fileRoot, "file-root", ".", "root directory of the file storage")
	return cmd
}

// NewConfigCommand creates the config inspection command
func NewConfigCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}
			fmt.Printf("App: %s (%s)\n", cfg.AppName, cfg.RunMode)
			fmt.Printf("Listen: %s:%d\n", cfg.Host, cfg.Port)
			fmt.Printf("Database: %s\n", cfg.Data.Database.Driver)
			fmt.Println("Link handlers:")
			for _, h := range cfg.Browser.Handlers {
				fmt.Printf("  %s (%s)\n", h.Identifier, h.Kind)
			}
			fmt.Println("Tables:")
			for _, t := range cfg.Tables {
				fmt.Printf("  %s (%s)\n", t.Name, t.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			version.Print()
		},
	}
}
