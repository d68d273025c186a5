package propagate

type (
	// Sent when the verification subset has been copied.
	EventSnapshot struct {
		Dir   string
		Files int
	}

	// Sent when a target has been written, or when writing it failed.
	EventWrote struct {
		Err    error
		Path   string
		Format string
	}

	// Sent when verification has completed.
	EventVerified struct {
		Verification Verification
	}
)
