// Package writers turns fragments into the per-input output files.
//
// Design:
//   - Writers own all presentation decisions (file naming, placeholders);
//     record rendering lives in internal/output.
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - JSONL goes through pkg/api (v1) for a stable wire format.
package writers
