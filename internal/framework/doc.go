// Package framework holds the declarative side of the wizard: framework
// descriptors, their question lists, and the registry that resolves a user's
// framework selection to a descriptor.
//
// Descriptors are YAML documents validated against an embedded JSON schema.
// The built-in set is embedded in the binary; additional descriptors can be
// loaded from a directory and override built-ins with the same name.
package framework
