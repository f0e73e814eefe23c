// Package cmd provides the command-line interface for mssql-init.
//
// The root command provisions the test database. Subcommands:
//   - provision: wait for SQL Server, then create the database, login, user and role grant
//   - wait: only wait until the administrative login succeeds
//   - plan: print the statements without connecting
package cmd
