// Package mssql connects to SQL Server through database/sql and classifies the
// errors the server returns.
//
// The driver is github.com/microsoft/go-mssqldb, registered under the
// "sqlserver" name. Each [Conn] pins a single session so statements that depend
// on the active catalog run where the connection was opened.
package mssql
