// Package credentials resolves platform API keys from declarative sources.
//
// Keys are referenced as env:NAME, file:/path, or literal:VALUE strings so
// configuration files never need to embed secrets directly. An optional
// dotenv file can be loaded into the process environment before resolution.
package credentials
