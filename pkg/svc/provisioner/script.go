package provisioner

import (
	"fmt"
	"strings"
)

// Phase selects the catalog a step runs in.
type Phase string

const (
	// PhaseServer steps run on the administrative catalog.
	PhaseServer Phase = "server"
	// PhaseDatabase steps run on the provisioned database.
	PhaseDatabase Phase = "database"
)

// Step is one statement of the provisioning script.
type Step struct {
	Name     string `json:"name"`
	Phase    Phase  `json:"phase"`
	SQL      string `json:"sql"`
	Activity string `json:"-"`
	Success  string `json:"-"`
}

// Step names.
const (
	StepDatabase = "database"
	StepLogin    = "login"
	StepUser     = "user"
	StepRole     = "role"
)

// Script returns the provisioning statements in execution order.
// Every creation is guarded by an existence check; the role grant is always reapplied.
func Script(opts Options) []Step {
	database := quoteIdent(opts.Database)
	login := quoteIdent(opts.Login)
	role := quoteIdent(opts.Role)

	return []Step{
		{
			Name:  StepDatabase,
			Phase: PhaseServer,
			SQL: fmt.Sprintf(`IF NOT EXISTS (SELECT name FROM sys.databases WHERE name = %s)
BEGIN
    CREATE DATABASE %s;
END`, quoteLiteral(opts.Database), database),
			Activity: fmt.Sprintf("creating database %s", opts.Database),
			Success:  fmt.Sprintf("database %s created", opts.Database),
		},
		{
			Name:  StepLogin,
			Phase: PhaseServer,
			SQL: fmt.Sprintf(`IF NOT EXISTS (SELECT name FROM sys.server_principals WHERE name = %s)
BEGIN
    CREATE LOGIN %s WITH PASSWORD = %s, CHECK_POLICY = OFF;
END`, quoteLiteral(opts.Login), login, quoteLiteral(opts.LoginPassword)),
			Activity: fmt.Sprintf("creating login %s", opts.Login),
			Success:  fmt.Sprintf("login %s created", opts.Login),
		},
		{
			Name:  StepUser,
			Phase: PhaseDatabase,
			SQL: fmt.Sprintf(`IF NOT EXISTS (SELECT name FROM sys.database_principals WHERE name = %s)
BEGIN
    CREATE USER %s FOR LOGIN %s;
END`, quoteLiteral(opts.Login), login, login),
			Activity: fmt.Sprintf("creating user %s in %s", opts.Login, opts.Database),
			Success:  fmt.Sprintf("user %s created in %s", opts.Login, opts.Database),
		},
		{
			Name:     StepRole,
			Phase:    PhaseDatabase,
			SQL:      fmt.Sprintf("ALTER ROLE %s ADD MEMBER %s;", role, login),
			Activity: fmt.Sprintf("granting %s to %s", opts.Role, opts.Login),
			Success:  "permissions granted",
		},
	}
}

// StepsFor returns the steps of script that belong to phase, preserving order.
func StepsFor(script []Step, phase Phase) []Step {
	steps := make([]Step, 0, len(script))

	for _, step := range script {
		if step.Phase == phase {
			steps = append(steps, step)
		}
	}

	return steps
}

// quoteIdent brackets a T-SQL identifier the way QUOTENAME does.
func quoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// quoteLiteral renders a Unicode string literal.
func quoteLiteral(value string) string {
	return "N'" + strings.ReplaceAll(value, "'", "''") + "'"
}
