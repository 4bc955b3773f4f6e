package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidAddress(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "invalid scheme", url: "invalid://address"},
		{name: "nothing listening", url: "nats://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url)

			assert.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), "failed to connect to NATS server")
		})
	}
}
