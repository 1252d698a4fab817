// Package migration moves datasets, examples, experiments, annotation
// queues, automation rules, and prompts between two tracing-platform
// instances.
//
// The Migrator reads from a source instance and writes to a destination
// instance, remapping cross-entity identifiers (examples to datasets, runs
// to experiments and examples, rules to datasets and queues) as it goes.
// Datasets and annotation queues are de-duplicated by name so re-running a
// migration is idempotent for those entities; examples, experiments, runs,
// and rules carry no such guard and duplicate on retry.
package migration
