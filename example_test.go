package oracle_test

import (
	"context"
	"fmt"
	"log"
	"time"

	oracle "github.com/rio-ARC/Oracle-of-Delphi-Chatbot"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ports"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/timing"
)

// ExampleNew shows a complete consultation against a canned responder. The
// contemplation window is collapsed to a millisecond so the example returns
// immediately; production setups keep the defaults and feel the pause.
func ExampleNew() {
	responder := ports.ResponderFunc(func(ctx context.Context, conversation []ports.Message) (string, error) {
		return "The road reveals itself to those who walk it.", nil
	})

	o, err := oracle.New(responder,
		oracle.WithTiming(timing.Config{
			ContemplationMin:    time.Millisecond,
			ContemplationMax:    time.Millisecond,
			CompleteToIdleHint:  time.Millisecond,
			ExternalCallTimeout: time.Second,
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	prophecy, snap, err := o.Consult(context.Background(), "pilgrim", "Which road should I take?")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(prophecy)
	fmt.Println(snap.CurrentState)
	// Output:
	// The road reveals itself to those who walk it.
	// COMPLETE
}
