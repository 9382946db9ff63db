// Package engine contains the fragmenting core: window placement, per-fragment
// composition, and the per-sequence admission policy. It never imports app,
// writers, cli, or pipeline; keep it domain-only.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for stable wire types (JSONL v1).
package engine
