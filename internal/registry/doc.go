// Package registry catalogs trained model artifacts. It discovers artifacts
// by their naming convention, selects among candidates for a language and
// direction, checks vocabulary compatibility against the active tokenizers,
// and caches loaded artifacts in an LRU bound with at-most-one concurrent
// load per artifact identity.
package registry
