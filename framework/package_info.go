// Package framework contains the low-level test harness infrastructure that is
// not specific to what is being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results, outside of the Go test runner.
//
// 2. Tests can be selected or excluded by regex filters on their identifiers.
//
// 3. Debug output produced during a test is captured and can be replayed by
// the console reporter when a test fails.
//
// The domain-specific code that knows what is being tested (the fixture
// scenarios, the client invocations, the comparison logic) lives in the other
// packages and builds its own test API on top of this one.
package framework
