// Package utils hosts shared infrastructure for the tracemig CLI: the
// Viper-backed ConfigurationLoader, the zap LoggerFactory, and the
// CommandContextAccessor used to thread configuration metadata through
// Cobra command contexts.
package utils
