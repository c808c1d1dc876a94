/*
Package oracle orchestrates consultations of the Oracle of Delphi.

A consultation drives a per-session ritual state machine through
invocation, contemplation, revelation, and completion, pacing the perceived
latency against a randomized contemplation window: a fast answer is held
back until the window passes, a slow one is never cut short.

The response itself comes from a ports.Responder (Groq in production, stubs
in tests); transports (HTTP, MCP, CLI) sit on top of Consult.
*/
package oracle
