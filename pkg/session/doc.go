/*
Package session implements the process-wide registry of ritual state machines.

The registry owns one machine per session id, created lazily on first use, and
serializes consultations of the same session through per-session locks that
are garbage collected by reference counting. Distinct sessions never contend.
*/
package session
