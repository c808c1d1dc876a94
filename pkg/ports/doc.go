/*
Package ports defines the boundary interfaces consumed by the oracle core:
the response-generation collaborator and the transition event archive.
Adapters under pkg/adapters implement them.
*/
package ports
