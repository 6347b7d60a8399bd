// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The resolution pipeline runs in stages, each a plain function over
// domain types:
//
//	ExtractCandidates -> dispatchLookups -> NormalizeRecord ->
//	Deduplicate -> GroupByKanji -> Classify
//
// ResolutionService ties the stages together and owns the state.
package services
