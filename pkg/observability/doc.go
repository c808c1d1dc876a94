/*
Package observability provides the concrete on-transition observers wired
into ritual machines: structured logging, prometheus metrics, otel span
events, event archiving, and an ordered fan-out combinator.
*/
package observability
