// Package openapi derives wizard definitions from OpenAPI documents: an
// operation's request body schema becomes the flat field list, and the
// x-wizard-steps / x-step extensions partition it into ordered steps.
package openapi
