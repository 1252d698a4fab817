package migration

import "fmt"

const (
	invalidInputErrorTemplateConstant  = "%s: %s"
	ambiguousNameErrorTemplateConstant = "found multiple %s entities named %q on the destination instance"
)

// InvalidInputError describes migration option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// AmbiguousNameError reports that more than one destination entity carries
// the de-duplication name. The state is unrecoverable without manual
// cleanup on the destination instance.
type AmbiguousNameError struct {
	EntityKind string
	EntityName string
}

// Error describes the ambiguous destination state.
func (ambiguousError AmbiguousNameError) Error() string {
	return fmt.Sprintf(ambiguousNameErrorTemplateConstant, ambiguousError.EntityKind, ambiguousError.EntityName)
}
