package lightsync_test

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/creachadair/lightsync"
)

func ExampleHandoff() {
	h := lightsync.NewHandoff[string]()

	// Sending does not block, and a new value replaces one not yet received.
	h.Send("red")
	h.Send("green")

	v, err := h.Recv(context.Background())
	if err != nil {
		log.Fatalf("Recv: %v", err)
	}
	fmt.Println(v)

	// The value was consumed, so the handoff is empty again.
	_, ok := h.TryRecv()
	fmt.Println("pending:", ok)

	// Output:
	// green
	// pending: false
}

func ExampleValue() {
	s := lightsync.NewValue("red")

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use Wait to block until a new value is set.
	ready := make(chan struct{})
	wg.Go(func() {
		close(ready)
		v, ok := s.Wait(ctx)
		if !ok {
			log.Fatal("Timeout waiting for value to change")
		}
		fmt.Println("changed to", v)
	})
	<-ready
	time.Sleep(10 * time.Millisecond)
	s.Set("green")
	wg.Wait()

	// Use Get to fetch the current value at any time.
	fmt.Println(s.Get())

	// Output:
	// changed to green
	// green
}
