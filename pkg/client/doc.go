// Package client holds the clients mssql-init talks to:
//
//   - mssql: SQL Server connections through go-mssqldb and error classification
//   - docker: container endpoint resolution through the Docker API
//   - netretry: detection of transient network failures
package client
