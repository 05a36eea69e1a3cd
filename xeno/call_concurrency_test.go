package xeno

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestEngineServesConcurrentExecutions(t *testing.T) {
	engine := MustNewEngine(Config{Trace: TraceBasic})
	program, err := engine.Compile(`tenant ← §receive
total ← 0
§function add(n)
total ← total ⊕ n
§transmit tenant ⊕ ":" ⊕ total
§end_function
§iterate n §in [1, 2, 3]
§call add(n)
§end_iterate
§transmit tenant ⊕ " done " ⊕ total`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tenant := fmt.Sprintf("t%d", id)
			result := engine.Run(ctx, program, []Value{NewString(tenant)})
			if !result.Success {
				errs <- fmt.Errorf("%s: %s", tenant, result.Error)
				return
			}
			want := []string{tenant + ":1", tenant + ":2", tenant + ":3", tenant + " done 0"}
			if fmt.Sprint(result.Output) != fmt.Sprint(want) {
				errs <- fmt.Errorf("%s: output %q, want %q", tenant, result.Output, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
