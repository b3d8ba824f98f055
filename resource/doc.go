// Package resource budgets memory and worker slots shared by traversals.
//
// A nil *Controller is valid and imposes no limits.
package resource
