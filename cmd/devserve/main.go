// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.6
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"devserve/internal/config"
	devhttp "devserve/internal/devserver/http"
	"devserve/internal/devserver/watch"
	"devserve/internal/tooling"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	tooling.Execute(newRootCommand(os.Getenv))
}

func newRootCommand(getenv func(string) string) *cobra.Command {
	root := tooling.NewRootCommand("devserve", "Serve a static site from disk for local development")
	flags := root.Flags()
	flags.String("root", "", "project root to serve (env "+config.EnvRoot+", default working directory)")
	flags.String("bind", "", "bind address (env "+config.EnvBind+")")
	flags.Int("port", config.DefaultPort, "listen port (env "+config.EnvPort+")")
	flags.String("index", config.DefaultIndex, "directory index file (env "+config.EnvIndex+")")
	flags.String("log-file", "", "append access log lines to this file (env "+config.EnvLogFile+")")
	flags.Bool("watch", false, "log file changes and check JSON/YAML documents (env "+config.EnvWatch+")")
	flags.Bool("dev", false, "include file and line in log output")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, getenv)
		if err != nil {
			return err
		}
		if dev, _ := cmd.Flags().GetBool("dev"); dev {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
		return serve(cmd.Context(), cfg, cmd.OutOrStdout())
	}
	return root
}

// loadConfig reads the environment and applies any flags set explicitly.
func loadConfig(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(getenv)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("bind") {
		cfg.Bind, _ = flags.GetString("bind")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("index") {
		cfg.Index, _ = flags.GetString("index")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	return cfg.Normalize()
}

func serve(parent context.Context, cfg config.Config, out io.Writer) error {
	srv, err := devhttp.New(devhttp.Config{
		Bind:    cfg.Bind,
		Port:    cfg.Port,
		Root:    cfg.Root,
		Index:   cfg.Index,
		LogFile: cfg.LogFile,
		Logger:  log.Default(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := newSignalContext(parent)
	defer cancel()

	if cfg.Watch {
		w, err := watch.New(cfg.Root, log.Default())
		if err != nil {
			log.Printf("warning: file watching disabled: %v", err)
		} else {
			defer w.Close()
			go w.Run(ctx)
		}
	}

	banner(out, cfg)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func banner(out io.Writer, cfg config.Config) {
	host := cfg.Bind
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	url := fmt.Sprintf("http://%s:%d", host, cfg.Port)
	fmt.Fprintf(out, "%s running at %s\n", color.New(color.Bold).Sprint("Site"), color.CyanString(url))
	fmt.Fprintf(out, "Serving %s\n", color.GreenString(cfg.Root))
	if cfg.Watch {
		fmt.Fprintln(out, color.YellowString("Watching for changes"))
	}
}
