package linkpolicy

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		href string
		want Action
	}{
		{"app://chat", Action{Kind: KindApp, Path: "/(tabs)/chat"}},
		{"app://posts", Action{Kind: KindApp, Path: "/(tabs)/posts"}},
		{"APP://Chat", Action{Kind: KindApp, Path: "/(tabs)/chat"}},
		{"app://home/fam-1", Action{Kind: KindApp, Path: "/home/fam-1"}},
		{"app://foo/", Action{Kind: KindApp, Path: "/foo/"}},
		{"app:///foo", Action{Kind: KindApp, Path: "/foo"}},
		{"app://chat/", Action{Kind: KindApp, Path: "/chat/"}},
		{"https://example.com/a?b=c", Action{Kind: KindExternal, URL: "https://example.com/a?b=c"}},
		{" http://example.com ", Action{Kind: KindExternal, URL: "http://example.com"}},
		{"", Action{Kind: KindBlocked, Reason: ReasonEmpty}},
		{"   ", Action{Kind: KindBlocked, Reason: ReasonEmpty}},
		{"javascript:alert(1)", Action{Kind: KindBlocked, Reason: ReasonNotAllowed}},
		{"mailto:hi@example.com", Action{Kind: KindBlocked, Reason: ReasonNotAllowed}},
		{"/relative", Action{Kind: KindBlocked, Reason: ReasonNotAllowed}},
	}

	for _, tc := range cases {
		if got := Classify(tc.href); got != tc.want {
			t.Fatalf("Classify(%q) = %+v, want %+v", tc.href, got, tc.want)
		}
	}
}
