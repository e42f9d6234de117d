package storage

import (
	"testing"

	"alcyxob/gym-tally/internal/config"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{}, ""},
		{config.S3Config{Endpoint: "minio:9000"}, "http://minio:9000"},
		{config.S3Config{Endpoint: "minio:9000", UseSSL: true}, "https://minio:9000"},
		{config.S3Config{Endpoint: "https://s3.example.com", UseSSL: false}, "https://s3.example.com"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.cfg); got != tt.want {
			t.Errorf("endpointURL(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}
