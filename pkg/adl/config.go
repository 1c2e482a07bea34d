package adl

// Config holds the tunables the core recognizes (spec.md §6). It carries
// no environment variables, file paths or CLI surface of its own — the
// outer cmd/adlplan layer decodes a Config from flags/files and passes it
// in.
type Config struct {
	// ResolverMaxDepth bounds SLD resolution depth; exceeding it surfaces
	// a ResolverLimitError rather than recursing unboundedly.
	ResolverMaxDepth int

	// MaxGroundingsPerSchema bounds the number of ground instances the
	// grounder will produce for a single action schema before surfacing a
	// GroundingLimitError.
	MaxGroundingsPerSchema int

	// DequantifyEagerly is carried so callers and config files can set
	// it, but nothing in this package reads it: GroundActions always
	// expands forall/exists over typed variables at grounding time,
	// whatever its value.
	DequantifyEagerly bool
}

// DefaultConfig returns the engine's default tunables: a resolver depth
// generous enough for realistic derived-predicate axiom chains, a
// grounding cap that protects against parameter explosions, and
// DequantifyEagerly set to true, matching the grounder's only
// (eager) dequantification path.
func DefaultConfig() Config {
	return Config{
		ResolverMaxDepth:       1000,
		MaxGroundingsPerSchema: 1_000_000,
		DequantifyEagerly:      true,
	}
}
