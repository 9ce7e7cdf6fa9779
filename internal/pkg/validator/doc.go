// Package validator checks request and dependency structs using struct tags.
//
// Failures come back as a map keyed by the snake_case field name so HTTP
// handlers can return them verbatim under the "error" envelope key.
package validator
