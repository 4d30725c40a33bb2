package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

func TestStore(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, st *Store)
	}{
		{"create and get", func(t *testing.T, st *Store) {
			s, err := st.Create([]engine.PlayerID{alice, bob, carol}, 3)
			require.NoError(t, err)
			_, err = uuid.Parse(s.ID)
			require.NoError(t, err)
			got, err := st.Get(s.ID)
			require.NoError(t, err)
			assert.Same(t, s, got)
			assert.Equal(t, 1, st.Count())
		}},
		{"unknown id", func(t *testing.T, st *Store) {
			_, err := st.Get("nope")
			var nf NotFoundError
			assert.True(t, errors.As(err, &nf))
		}},
		{"bad players are not stored", func(t *testing.T, st *Store) {
			_, err := st.Create([]engine.PlayerID{alice}, 0)
			assert.Error(t, err)
			assert.Equal(t, 0, st.Count())
		}},
		{"remove", func(t *testing.T, st *Store) {
			s, err := st.Create([]engine.PlayerID{alice, bob, carol}, 0)
			require.NoError(t, err)
			st.Remove(s.ID)
			_, err = st.Get(s.ID)
			assert.Error(t, err)
		}},
		{"concurrent creates", func(t *testing.T, st *Store) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := st.Create([]engine.PlayerID{alice, bob, carol}, 0)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()
			assert.Equal(t, 20, st.Count())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, NewStore(quietLogger()))
		})
	}
}
