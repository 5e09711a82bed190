package requests

// GenerateRequest overrides the configured seed for one API call. A nil Seed
// falls back to the configured seed, or to runtime entropy when none is set.
type GenerateRequest struct {
	Seed *uint64 `json:"seed"`
}
