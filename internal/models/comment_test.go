package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComment_CanModify(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	comment := &Comment{ID: 1, AuthorID: 7, CreatedAt: created}

	tests := []struct {
		name     string
		readerID uint
		at       time.Time
		want     bool
	}{
		{"author just after posting", 7, created.Add(time.Second), true},
		{"author at 4m59s", 7, created.Add(4*time.Minute + 59*time.Second), true},
		{"author at exactly 5m", 7, created.Add(5 * time.Minute), true},
		{"author at 5m01s", 7, created.Add(5*time.Minute + time.Second), false},
		{"other reader inside window", 8, created.Add(time.Minute), false},
		{"other reader outside window", 8, created.Add(time.Hour), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, comment.CanModify(tt.readerID, tt.at))
		})
	}
}
