package backup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteDatabaseName(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"owner@example.com", "pos_owner_example_com"},
		{" Owner+Shop@Example.COM ", "pos_owner_shop_example_com"},
		{"", ""},
		{"@@", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemoteDatabaseName("pos_", tt.email), tt.email)
	}

	long := RemoteDatabaseName("pos_", strings.Repeat("a", 100)+"@example.com")
	assert.Len(t, long, maxDatabaseName)
}
