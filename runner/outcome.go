package runner

// Outcome classifies the result of one domain comparison.
type Outcome string

const (
	// OutcomeOK means the client under test and the reference client produced
	// byte-identical output.
	OutcomeOK Outcome = "OK"
	// OutcomeKO means the outputs differed while the reference was stable
	// across two fetches: a confirmed regression in the client under test.
	OutcomeKO Outcome = "KO"
	// OutcomeREJ means the outputs differed but the reference itself gave
	// different bytes on a second fetch: the target is unstable and the
	// mismatch cannot be attributed to the client.
	OutcomeREJ Outcome = "REJ"
)
