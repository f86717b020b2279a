package compose

import "github.com/galois26/medal-bot/internal/model"

// Picker returns a uniformly distributed int in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

// Sample draws one row with probability 1/len(rows) and returns it with its
// event key.
func Sample(rows []model.Row, p Picker) (model.Row, model.EventKey, error) {
	if len(rows) == 0 {
		return model.Row{}, model.EventKey{}, ErrDataUnavailable
	}
	r := rows[p.IntN(len(rows))]
	return r, r.Key(), nil
}
