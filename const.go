package phoenix

const (
	// Version is the current version of the market decoder.
	Version = "v1.0.0"

	// DefaultLadderDepth is the level cap applied when callers do not pick one.
	DefaultLadderDepth = 10

	// DefaultBookDepth is the per-side order cap applied when callers do not
	// pick one.
	DefaultBookDepth = 20
)

// Unlimited disables the level or order cap of a view builder.
const Unlimited = 0
