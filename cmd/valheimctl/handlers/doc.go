// Package handlers implements the business logic behind each CLI command.
//
// Handlers load the configuration, build the AWS clients and run the
// provisioning phases. Platform constructors are package variables so tests
// can swap them for fakes.
package handlers
