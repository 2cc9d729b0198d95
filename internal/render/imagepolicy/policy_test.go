package imagepolicy

import "testing"

func TestDefaultPolicy(t *testing.T) {
	policy := Default()

	cases := map[string]bool{
		"https://firebasestorage.googleapis.com/v0/b/app/o/bg.png": true,
		"  https://firebasestorage.googleapis.com/x.png  ":         true,
		"https://famhome.appspot.com/bg.png":                       true,
		"https://FAMHOME.APPSPOT.COM/bg.png":                       true,
		"https://evil.com/.appspot.com/bg.png":                     false,
		"https://appspot.com.evil.com/bg.png":                      false,
		"http://firebasestorage.googleapis.com/x.png":              false,
		"javascript:alert(1)":                                      false,
		"":                                                         false,
	}
	for raw, want := range cases {
		if got := policy.Allowed(raw); got != want {
			t.Fatalf("Allowed(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewOverridesDefaults(t *testing.T) {
	policy := New([]string{"https://cdn.example.com/"}, nil)

	if !policy.Allowed("https://cdn.example.com/a.png") {
		t.Fatal("expected configured prefix to be trusted")
	}
	if policy.Allowed("https://firebasestorage.googleapis.com/a.png") {
		t.Fatal("expected default prefix to be replaced")
	}
	if !policy.Allowed("https://x.appspot.com/a.png") {
		t.Fatal("expected default host suffixes to remain")
	}
}
