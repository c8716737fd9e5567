// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the libweb configuration settings from a YAML
// file. It is preferred to implement Config with primitive fields or
// other structs which are defined locally, not models or structs which
// are defined in lower layers, so other layers can change freely
// without affecting deployed configuration files.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin"
	"github.com/openshelf/libweb/pkg/core/repo"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
}

// Database contains the database related configuration settings.
type Database struct {
	Host     string // domain name or IP address of the DBMS server
	Port     int    // port number of the DBMS server
	Name     string // database name, like libweb
	User     string // connecting role name
	Password string // password of the connecting role
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized by the configuration file; uninitialized
// fields take their default values during validation.
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// Load reads the configuration file at path and unmarshals a Config
// instance out of it. Extra file items are ignored and missing items
// take their default values. The loaded Config is validated and
// normalized before being returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize checks settings and returns an error if they
// are not acceptable. It can also modify settings in order to
// normalize them or replace some zero values with their expected
// default values, hence, it takes a pointer receiver.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database settings: %w", err)
	}
	c.Gin.ValidateAndNormalize()
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.ConnectionURL())
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// ValidateAndNormalize fills the DBMS endpoint defaults and requires
// a database name and user to be configured explicitly.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		d.Host = "127.0.0.1"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if d.User == "" {
		return fmt.Errorf("database user is required")
	}
	return nil
}

// ConnectionURL renders the connection information as a postgres URL,
// escaping the user info as needed.
func (d Database) ConnectionURL() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + strconv.Itoa(d.Port),
		Path:   d.Name,
	}
	return u.String()
}

// ValidateAndNormalize replaces uninitialized middleware flags with
// their default values: both middlewares are registered by default.
func (g *Gin) ValidateAndNormalize() {
	t := true
	if g.Logger == nil {
		g.Logger = &t
	}
	if g.Recovery == nil {
		g.Recovery = &t
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}
