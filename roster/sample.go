package roster

import (
	"math/rand/v2"

	"roster-app-go/models"
)

// Sample returns min(k, len(src)) distinct records chosen uniformly at random.
// It runs a partial Fisher-Yates shuffle on a copy, so src is left untouched.
func Sample(src []models.RosterRecord, k int, r *rand.Rand) []models.RosterRecord {
	n := len(src)
	if k > n {
		k = n
	}
	if k <= 0 {
		return []models.RosterRecord{}
	}

	pool := make([]models.RosterRecord, n)
	copy(pool, src)
	for i := 0; i < k; i++ {
		j := i + intN(r, n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
