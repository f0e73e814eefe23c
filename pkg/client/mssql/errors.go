package mssql

import (
	"errors"

	"github.com/devantler-tech/mssql-init/pkg/client/netretry"
)

// Kind classifies a statement or connection error.
type Kind int

const (
	// KindUnknown is any error that has no more specific classification.
	KindUnknown Kind = iota
	// KindConflict means the object being created already exists.
	KindConflict
	// KindPermission means the principal lacks a required permission.
	KindPermission
	// KindLoginFailed means the server rejected the credentials or the requested catalog.
	KindLoginFailed
	// KindTransient means the server was unreachable or still starting.
	KindTransient
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindLoginFailed:
		return "login-failed"
	case KindTransient:
		return "transient"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// SQL Server error numbers.
const (
	errDatabaseExists       = 1801
	errObjectExists         = 2714
	errPrincipalExists      = 15025
	errUserExists           = 15023
	errLoginAlreadyMapped   = 15063
	errPermissionDenied     = 262
	errObjectPermission     = 229
	errNoPermission         = 15247
	errRoleMissingOrDenied  = 15151
	errLoginFailed          = 18456
	errCannotOpenDatabase   = 4060
	errUntrustedDomainLogin = 18452
	errScriptUpgradeMode    = 18401
	errDatabaseStartingUp   = 922
	errDatabaseInTransition = 952
)

// numberedError is implemented by go-mssqldb's Error.
type numberedError interface {
	error
	SQLErrorNumber() int32
}

// Classify maps err to a Kind using the SQL Server error number when present,
// falling back to network error detection.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var numbered numberedError
	if errors.As(err, &numbered) {
		if kind, ok := classifyNumber(numbered.SQLErrorNumber()); ok {
			return kind
		}
	}

	if netretry.IsRetryable(err) {
		return KindTransient
	}

	return KindUnknown
}

// IsConflict reports whether err is an already-exists error.
func IsConflict(err error) bool {
	return Classify(err) == KindConflict
}

func classifyNumber(number int32) (Kind, bool) {
	switch number {
	case errDatabaseExists, errObjectExists, errPrincipalExists, errUserExists, errLoginAlreadyMapped:
		return KindConflict, true
	case errPermissionDenied, errObjectPermission, errNoPermission, errRoleMissingOrDenied:
		return KindPermission, true
	case errLoginFailed, errCannotOpenDatabase, errUntrustedDomainLogin:
		return KindLoginFailed, true
	case errScriptUpgradeMode, errDatabaseStartingUp, errDatabaseInTransition:
		return KindTransient, true
	default:
		return KindUnknown, false
	}
}
