// Package customer holds storefront customer identities and the reconciler
// that keeps the session's identity consistent with the resolved store and
// the authenticated principal on every request.
package customer
