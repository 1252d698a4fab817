// Package platform provides a typed client for the hosted tracing and
// evaluation platform's REST API.
//
// It defines wire models for datasets, examples, experiment sessions, runs,
// annotation queues, automation rules, and prompt commits, and a Client
// that performs authenticated JSON requests with offset and cursor
// pagination. The package powers the migration commands and can be pointed
// at self-hosted deployments through its base URL configuration.
package platform
