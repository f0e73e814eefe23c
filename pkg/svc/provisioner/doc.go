// Package provisioner prepares a SQL Server test environment.
//
// A run waits a warm-up delay, connects with a bounded number of attempts and
// then applies an idempotent script in two phases:
//
//   - server: create the database and the login against the administrative catalog
//   - database: create the user and grant the role inside the new database
//
// Already-exists errors are reported as warnings; every other statement error
// stops the run.
package provisioner
