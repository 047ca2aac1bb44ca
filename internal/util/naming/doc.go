// Package naming provides consistent naming functions for AWS resources.
//
// Names follow the stack name: the stack itself is named after the server,
// staged templates live under valheimctl/{stack}/ in the staging bucket, and
// log streams are prefixed with the lower-cased stack name.
package naming
