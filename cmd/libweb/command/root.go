// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the libweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for creating the database schema.
//
//	./libweb [-c /path/of/main/config.yaml]     # start web server
//	./libweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/openshelf/libweb/pkg/adapter/config"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/routes"
	"github.com/openshelf/libweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "libweb",
	Short: "A library-management web backend",
	Long: `A library-management web backend which keeps books, members,
and loans in per-entity collections of a PostgreSQL database used as a
key to JSON-document store. Books and members expose plain CRUD APIs
while loans follow a borrow/return lifecycle whose eligibility rules
are the only business rules of the system.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer closePool(p)
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return postgres.InitSchema(ctx, conn)
	})
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

func closePool(p repo.Pool) {
	if pp, ok := p.(*postgres.Pool); ok {
		_ = pp.Close()
	}
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
