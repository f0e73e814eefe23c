// Package docker resolves the published address of a SQL Server container through the Docker API.
package docker
