//nolint:gochecknoglobals // export_test.go pattern requires global variables to expose internal functions
package notify

// UnderlyingFile exports underlyingFile for testing.
var UnderlyingFile = underlyingFile
