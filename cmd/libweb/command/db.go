// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/openshelf/libweb/pkg/adapter/config"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management commands",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the collection tables",
	Long: `Create the books, members, and loans collection tables in the
configured database if they do not exist yet. The root command runs the
same initialization at startup, so this sub-command is only needed to
prepare a database without starting the server.`,
	RunE: initDB,
}

func initDB(_ *cobra.Command, _ []string) error {
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
	return nil
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
