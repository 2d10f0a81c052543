package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("churn:10.0.0.1", 3, 0.001) {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if l.Allow("churn:10.0.0.1", 3, 0.001) {
		t.Errorf("request over capacity allowed, want denied")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("churn:10.0.0.1", 3, 0.001) {
			t.Fatalf("first caller request %d denied", i+1)
		}
	}
	if l.Allow("churn:10.0.0.1", 3, 0.001) {
		t.Fatalf("first caller not exhausted")
	}

	// A different caller key holds its own bucket.
	if !l.Allow("churn:10.0.0.2", 3, 0.001) {
		t.Errorf("second caller denied after first caller exhausted its bucket")
	}
	if !l.Allow("forecast:10.0.0.1", 3, 0.001) {
		t.Errorf("other run kind denied after churn bucket exhausted")
	}
}
