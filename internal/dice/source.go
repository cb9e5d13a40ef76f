package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source yields uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand. The zero value is ready to use.
type CryptoSource struct{}

// IntN returns a uniform integer in [0, n). It panics if n <= 0, like math/rand.
func (CryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("dice: invalid argument to IntN")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("dice: crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// NewSeededSource returns a reproducible PCG-backed source.
func NewSeededSource(seed uint64) Source {
	return mrand.New(mrand.NewPCG(seed, 0))
}

// Fixed replays a fixed list of faces (1..Sides) in order, wrapping around
// when it runs out. It makes games deterministic in tests and demos.
type Fixed struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewFixed returns a Fixed source over faces. At least one face is required.
func NewFixed(faces ...int) *Fixed {
	if len(faces) == 0 {
		panic("dice: NewFixed needs at least one face")
	}
	return &Fixed{faces: append([]int(nil), faces...)}
}

// IntN returns the next face shifted to [0, n).
func (f *Fixed) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.faces[f.next%len(f.faces)]
	f.next++
	return (v - 1) % n
}
