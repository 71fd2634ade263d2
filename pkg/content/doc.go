// Package content models CMS entries (boxes, sections, pages) and merchant
// configuration, and merges the latter into the flat map page rendering
// reads.
package content
