package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backupbridge/internal/models"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{104_857_600, "100.0 MiB"},
		{2_147_483_648, "2.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestFormatRow_StableColumnOrder(t *testing.T) {
	row := models.Row{"name": "a", "id": "1", "size": 10}
	assert.Equal(t, "id=1  name=a  size=10", formatRow(row))
}
