// Package audit re-validates media types recorded in an indexed issuance
// database and reports any divergence from history.
//
// The validation engine's contract is that replaying the chain re-derives
// byte-identical canonical forms. If an engine change ever rejects a
// historically accepted media type, or canonicalizes it differently, the
// digests of already-indexed data stop matching across nodes. That failure
// mode is not recoverable at runtime; it has to be caught before deployment.
// The auditor is the tool for catching it: point it at a node's index
// database and it replays every stored media type through the current Gate,
// comparing verdicts and canonical forms against what was recorded.
//
// Any finding is a compatibility bug in the engine, never a data problem.
package audit
