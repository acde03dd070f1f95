package services

import "testing"

func TestQdrantEndpoint(t *testing.T) {
	tests := []struct {
		raw     string
		host    string
		port    int
		tls     bool
		wantErr bool
	}{
		{raw: "http://localhost", host: "localhost", port: 6334},
		{raw: "http://qdrant:6335", host: "qdrant", port: 6335},
		{raw: "https://xyz.cloud.qdrant.io:6334", host: "xyz.cloud.qdrant.io", port: 6334, tls: true},
		{raw: "localhost:6334", wantErr: true},
		{raw: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		host, port, tls, err := qdrantEndpoint(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("qdrantEndpoint(%q) succeeded, want error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("qdrantEndpoint(%q) error: %v", tt.raw, err)
			continue
		}
		if host != tt.host || port != tt.port || tls != tt.tls {
			t.Errorf("qdrantEndpoint(%q) = %s, %d, %v", tt.raw, host, port, tls)
		}
	}
}
