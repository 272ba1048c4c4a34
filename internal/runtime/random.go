// random backs spec.md §4.5's random module, using stdlib math/rand
// with a package-local *rand.Rand — random.seed makes runs
// reproducible, which crypto/rand can't offer and this module's
// contract (unlike secrets/uuid) doesn't require CSPRNG output.
package runtime

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/aledsdavies/pycc/internal/value"
)

type randomState struct {
	r *rand.Rand
}

var globalRandom = &randomState{r: rand.New(rand.NewSource(1))}

func registerRandom(r *Registry) {
	r.register("random", map[string]Fn{
		"seed":    randomSeed,
		"random":  randomRandom,
		"randint": randomRandint,
	})
}

func randomSeed(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("seed takes 1 argument")
	}
	globalRandom.r = rand.New(rand.NewSource(args[0].Int))
	return value.None(), nil
}

func randomRandom(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return value.Value{}, fmt.Errorf("random takes no arguments")
	}
	return value.Float(globalRandom.r.Float64()), nil
}

func randomRandint(_ context.Context, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, fmt.Errorf("randint takes 2 arguments")
	}
	lo, hi := args[0].Int, args[1].Int
	if hi < lo {
		return value.Value{}, fmt.Errorf("randint: high < low")
	}
	return value.Int(lo + globalRandom.r.Int63n(hi-lo+1)), nil
}
