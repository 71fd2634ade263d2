// Package catalog holds the category and product read models the storefront
// consumes: the navigation hierarchy and the single-entity lookups used for
// breadcrumb relabeling.
package catalog
