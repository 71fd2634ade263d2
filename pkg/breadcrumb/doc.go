// Package breadcrumb maintains the visitor's navigation trail across
// language switches, relabeling each step from its owning entity.
package breadcrumb
