// Package storefront assembles the per-request storefront context: the
// resolved store, visitor identity, request language, breadcrumb trail,
// cached CMS content, navigation categories, page metadata and merged
// merchant configuration, published on the request context for rendering.
//
// Assembly is fail-open. Any stage failure is logged and the request
// proceeds with whatever partial context was built before it.
package storefront
