package testutil

import (
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
)

func TestServicePorts(t *testing.T) {
	tests := []struct {
		port nat.Port
		want int
	}{
		{portPostgres, 5432},
		{portRedis, 6379},
		{portMongo, 27017},
		{portClickHouse, 9000},
	}
	for _, tt := range tests {
		t.Run(string(tt.port), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.port.Int())
			assert.Equal(t, "tcp", tt.port.Proto())
		})
	}
}

func TestEndpoint_Addr(t *testing.T) {
	assert.Equal(t, "localhost:55432", Endpoint{Host: "localhost", Port: "55432"}.Addr())
}
