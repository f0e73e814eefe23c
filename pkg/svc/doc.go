// Package svc provides the service layer between the commands and the clients.
//
// Subpackages:
//   - provisioner: warm-up, bounded connection retries and the provisioning script
package svc
