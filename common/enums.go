// Package common holds option types shared by configuration, command line
// handling and the extractor itself, so none of them has to import the other.
package common

//go:generate go tool go-enum --marshal --names --nocase

// What to do with declarations that could not be converted: warn reports them
// and carries on, fail reports them and fails the run.
// ENUM(warn, fail)
type ErrorPolicy int
