// Package rerank provides optional Stage B candidate re-ranking for the
// phoneme correspondence engine using hosted language models. Providers
// share a common interface with a primary/fallback wrapper; the pipeline
// works without any of them.
package rerank
