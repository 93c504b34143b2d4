package bot

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maine/telebot/internal/telegram"
)

func TestPoller_Poll(t *testing.T) {
	tests := []struct {
		name       string
		start      int64
		updates    []telegram.Update
		err        error
		wantOffset int64
		wantErr    bool
	}{
		{
			name:       "advances past the highest id",
			updates:    []telegram.Update{textUpdate(10, 7, "a"), textUpdate(11, 7, "b")},
			wantOffset: 12,
		},
		{
			name:       "ids out of order",
			start:      3,
			updates:    []telegram.Update{textUpdate(5, 7, "a"), textUpdate(3, 7, "b")},
			wantOffset: 6,
		},
		{
			name:       "old ids never move offset back",
			start:      20,
			updates:    []telegram.Update{textUpdate(4, 7, "stale")},
			wantOffset: 20,
		},
		{
			name:       "empty batch keeps offset",
			start:      8,
			wantOffset: 8,
		},
		{
			name:       "error keeps offset",
			start:      8,
			err:        &telegram.Error{Code: 502, Description: "Bad Gateway"},
			wantOffset: 8,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOpts telegram.GetUpdatesOptions
			client := &mockClient{
				getUpdatesFunc: func(ctx context.Context, opts telegram.GetUpdatesOptions) ([]telegram.Update, error) {
					gotOpts = opts
					return tt.updates, tt.err
				},
			}

			p := NewPoller(client, 25, 50)
			p.SetOffset(tt.start)

			got, err := p.Poll(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				var apiErr *telegram.Error
				assert.True(t, errors.As(err, &apiErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.updates, got)
			}

			assert.Equal(t, telegram.GetUpdatesOptions{Offset: tt.start, Limit: 50, Timeout: 25}, gotOpts)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}
