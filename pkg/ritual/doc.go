/*
Package ritual implements the ritual pacing state machine.

Each consultation session owns one Machine that walks the five canonical
ritual states. Every committed transition produces an immutable Event that is
appended to the machine's history and fanned out to registered observers.
*/
package ritual
