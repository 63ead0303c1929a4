package storage

import (
	"testing"
	"time"
)

func TestNewImageKitBuildsClient(t *testing.T) {
	ik := NewImageKit("private_x", "public_y", "https://ik.imagekit.io/demo", 30*time.Second)
	if ik.client == nil {
		t.Fatal("expected SDK client to be initialised")
	}
	if ik.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", ik.timeout)
	}
}
