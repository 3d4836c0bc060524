package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{"localhost with port", "localhost:8080", NetAddress{Host: "localhost", Port: 8080}, false},
		{"ip with port", "127.0.0.1:3000", NetAddress{Host: "127.0.0.1", Port: 3000}, false},
		{"missing port", "localhost", NetAddress{}, true},
		{"non-numeric port", "localhost:abc", NetAddress{}, true},
		{"zero port", "localhost:0", NetAddress{}, true},
		{"bad host", "not-an-ip:8080", NetAddress{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	assert.Equal(t, "", (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
}
