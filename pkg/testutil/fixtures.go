package testutil

// Fixed device identifiers for deterministic tests.
const (
	TestKindredID1    = "a3f1c9e2b7d04e5f8a6b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f"
	TestKindredID2    = "0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c"
	TestOwnerParentID = "parent-0001"
)
